package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merciahealth/patient-portal/internal/httperr"
)

func TestCancelAction(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	ap := appt("pending", "2025-02-01", "10:00")
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)

	done := appt("completed", "2025-01-01", "10:00")
	err := Cancel(done, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, "completed", done.Status)
}

func TestConfirmAndReject(t *testing.T) {
	ap := appt("Pending", "2025-02-01", "10:00")
	require.NoError(t, Confirm(ap))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	// confirming twice is not a valid transition
	assert.Error(t, Confirm(ap))

	rej := appt("pending", "2025-02-01", "10:00")
	require.NoError(t, Reject(rej))
	assert.Equal(t, string(StatusRejected), rej.Status)
}

func TestCompleteRequiresElapsedDatetime(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	early := appt("confirmed", "2025-01-11", "09:00")
	err := Complete(early, now)
	assert.True(t, httperr.IsBusiness(err, "not_yet_due"))
	assert.Equal(t, "confirmed", early.Status)

	due := appt("confirmed", "2025-01-10", "09:00")
	require.NoError(t, Complete(due, now))
	assert.Equal(t, string(StatusCompleted), due.Status)
	require.NotNil(t, due.CompletedAt)

	pending := appt("pending", "2025-01-09", "09:00")
	assert.Error(t, Complete(pending, now))
}

func TestRescheduleAction(t *testing.T) {
	ap := appt("pending", "2025-02-01", "10:00")
	require.NoError(t, Reschedule(ap, "2025-02-03", "11:30"))
	assert.Equal(t, "2025-02-03", ap.AppointmentDate)
	assert.Equal(t, "11:30", ap.AppointmentTime)
	assert.Equal(t, string(StatusPending), ap.Status)

	confirmed := appt("confirmed", "2025-02-01", "10:00")
	err := Reschedule(confirmed, "2025-02-03", "11:30")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, "2025-02-01", confirmed.AppointmentDate)
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2025-03-03", "09:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "Monday", WeekdayName(got))

	_, err = ParseDateTime("03/03/2025", "09:00", time.UTC)
	assert.Error(t, err)
}
