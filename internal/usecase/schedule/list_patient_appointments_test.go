package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/models"
)

func TestListPatientAppointmentsGrouping(t *testing.T) {
	env := mondayEnv()
	doctor := models.Doctor{ID: 1, Name: "Dr. Alice Mwangi", Specialty: "Cardiology"}

	seed := func(date, timeOfDay, status string) uint {
		return env.repo.seedAppointment(models.Appointment{
			PatientID:       10,
			DoctorID:        1,
			Doctor:          doctor,
			AppointmentDate: date,
			AppointmentTime: timeOfDay,
			Status:          status,
			Reason:          "Consultation",
		})
	}

	upcomingID := seed("2025-03-03", "09:00", string(domain.StatusPending))
	pastID := seed("2025-02-24", "09:00", string(domain.StatusConfirmed))
	rejectedID := seed("2025-02-24", "10:00", string(domain.StatusRejected))
	cancelledID := seed("2025-03-10", "09:00", "Canceled")

	// Someone else's appointment never shows up.
	env.repo.seedAppointment(models.Appointment{
		PatientID:       11,
		DoctorID:        1,
		AppointmentDate: "2025-03-03",
		AppointmentTime: "10:00",
		Status:          string(domain.StatusPending),
	})

	out, err := env.list.Execute(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, out.Upcoming, 1)
	require.Len(t, out.Past, 2)
	require.Len(t, out.Cancelled, 1)

	assert.Equal(t, upcomingID, out.Upcoming[0].ID)
	assert.Equal(t, "Dr. Alice Mwangi", out.Upcoming[0].DoctorName)
	assert.Equal(t, "Cardiology", out.Upcoming[0].Specialty)
	assert.False(t, out.Upcoming[0].CanLeaveFeedback)

	// The legacy spelling is canonicalized before it reaches the client.
	assert.Equal(t, cancelledID, out.Cancelled[0].ID)
	assert.Equal(t, string(domain.StatusCancelled), out.Cancelled[0].Status)

	feedback := map[uint]bool{}
	for _, item := range out.Past {
		feedback[item.ID] = item.CanLeaveFeedback
	}
	assert.True(t, feedback[pastID], "elapsed confirmed visit is reviewable")
	assert.Contains(t, feedback, rejectedID)
	assert.False(t, feedback[rejectedID], "rejected request is not reviewable")
}

func TestListPatientAppointmentsEmpty(t *testing.T) {
	env := mondayEnv()

	out, err := env.list.Execute(context.Background(), 10)
	require.NoError(t, err)

	// Empty groups, not nil: the handler serializes them as [].
	assert.NotNil(t, out.Upcoming)
	assert.NotNil(t, out.Past)
	assert.NotNil(t, out.Cancelled)
	assert.Empty(t, out.Upcoming)
}
