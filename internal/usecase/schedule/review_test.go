package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merciahealth/patient-portal/internal/audit"
	"github.com/merciahealth/patient-portal/internal/clock"
	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/models"
)

func TestConfirmAndReject(t *testing.T) {
	env := mondayEnv()
	ctx := context.Background()

	a, err := env.book.Execute(ctx, BookAppointmentInput{
		PatientID: 10, DoctorID: 1, Date: "2025-03-03", Time: "09:00",
	})
	require.NoError(t, err)

	b, err := env.book.Execute(ctx, BookAppointmentInput{
		PatientID: 11, DoctorID: 1, Date: "2025-03-03", Time: "09:30",
	})
	require.NoError(t, err)

	confirmed, err := env.review.Confirm(ctx, a.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)

	rejected, err := env.review.Reject(ctx, b.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), rejected.Status)

	// Both transitions are pending-only.
	_, err = env.review.Confirm(ctx, a.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = env.review.Reject(ctx, b.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	// A rejected hold releases the slot.
	_, err = env.book.Execute(ctx, BookAppointmentInput{
		PatientID: 12, DoctorID: 1, Date: "2025-03-03", Time: "09:30",
	})
	require.NoError(t, err)
}

func TestReviewScopedToOwnDoctor(t *testing.T) {
	env := mondayEnv()
	ctx := context.Background()

	ap, err := env.book.Execute(ctx, BookAppointmentInput{
		PatientID: 10, DoctorID: 1, Date: "2025-03-03", Time: "09:00",
	})
	require.NoError(t, err)

	_, err = env.review.Confirm(ctx, ap.ID, 2)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCompleteRequiresElapsedConfirmed(t *testing.T) {
	env := mondayEnv()
	ctx := context.Background()

	ap, err := env.book.Execute(ctx, BookAppointmentInput{
		PatientID: 10, DoctorID: 1, Date: "2025-03-03", Time: "09:00",
	})
	require.NoError(t, err)

	// Still pending.
	_, err = env.review.Complete(ctx, ap.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = env.review.Confirm(ctx, ap.ID, 1)
	require.NoError(t, err)

	// Confirmed but the slot has not happened yet.
	_, err = env.review.Complete(ctx, ap.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "not_yet_due"))

	// Same repo, a clock past the slot.
	laterClk := clock.Fixed(time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC))
	review := NewReviewAppointment(env.repo, audit.NewDispatcher(nil), laterClk)

	done, err := review.Complete(ctx, ap.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)
}

func TestCancelGuards(t *testing.T) {
	env := mondayEnv()
	ctx := context.Background()

	ap, err := env.book.Execute(ctx, BookAppointmentInput{
		PatientID: 10, DoctorID: 1, Date: "2025-03-03", Time: "09:00",
	})
	require.NoError(t, err)

	// Not the owner.
	_, err = env.cancel.Execute(ctx, ap.ID, 11)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	// Unknown id.
	_, err = env.cancel.Execute(ctx, 999, 10)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	cancelled, err := env.cancel.Execute(ctx, ap.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	// Cancelling twice is a state error, not a silent no-op.
	_, err = env.cancel.Execute(ctx, ap.ID, 10)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelTerminalStates(t *testing.T) {
	env := mondayEnv()
	ctx := context.Background()

	for _, status := range []string{
		string(domain.StatusCompleted),
		string(domain.StatusRejected),
	} {
		id := env.repo.seedAppointment(models.Appointment{
			PatientID:       10,
			DoctorID:        1,
			AppointmentDate: "2025-02-24",
			AppointmentTime: "09:00",
			Status:          status,
		})

		_, err := env.cancel.Execute(ctx, id, 10)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"),
			"cancel from %s should fail, got %v", status, err)
		assert.Equal(t, status, env.repo.status(id))
	}
}
