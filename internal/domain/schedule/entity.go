package schedule

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate parses a calendar date in the portal's location.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, dateStr, loc)
}

// ParseDateTime combines a date string and a slot time string into one
// instant in the portal's location.
func ParseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, dateStr+" "+timeStr, loc)
}

// WeekdayName returns the named weekday ("Monday" .. "Sunday") availability
// windows are keyed by.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}
