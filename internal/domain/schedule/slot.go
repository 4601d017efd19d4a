package schedule

import (
	"time"

	"github.com/merciahealth/patient-portal/internal/models"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Slots expands one availability window into the ordered run of offerable
// slot start times. The cursor begins at the window start and advances by the
// interval while it is <= the window end, so the boundary slot is offerable
// even when it lands exactly on end_time. Deterministic, date-agnostic, no
// side effects; an unparseable or inactive window yields no slots.
func Slots(w models.AvailabilityWindow, intervalMinutes int) []string {
	if !w.Active || intervalMinutes <= 0 {
		return nil
	}

	start, err := time.Parse(TimeLayout, w.StartTime)
	if err != nil {
		return nil
	}
	end, err := time.Parse(TimeLayout, w.EndTime)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return nil
	}

	var out []string
	for cur := start; !cur.After(end); cur = cur.Add(time.Duration(intervalMinutes) * time.Minute) {
		out = append(out, cur.Format(TimeLayout))
	}
	return out
}

// ContainsSlot reports whether timeStr is one of the window's offerable slot
// start times.
func ContainsSlot(w models.AvailabilityWindow, intervalMinutes int, timeStr string) bool {
	for _, s := range Slots(w, intervalMinutes) {
		if s == timeStr {
			return true
		}
	}
	return false
}
