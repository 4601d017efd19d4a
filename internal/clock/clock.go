package clock

import "time"

const DefaultTimezone = "UTC"

// Clock is the single authoritative "now" source. Booking guards, bucketing
// and the auto-completion job must all read the same Clock so an appointment
// cannot be upcoming in one code path and past in another.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func LocationFor(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

type systemClock struct {
	loc *time.Location
}

func System(tz string) Clock {
	return systemClock{loc: LocationFor(tz)}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c systemClock) Location() *time.Location {
	return c.loc
}

type fixedClock struct {
	t time.Time
}

// Fixed returns a Clock pinned to t. Test helper.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func (c fixedClock) Location() *time.Location {
	return c.t.Location()
}
