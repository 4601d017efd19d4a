package schedule

import (
	"context"

	"github.com/merciahealth/patient-portal/internal/clock"
	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/dto"
)

type ListPatientAppointments struct {
	repo domain.Repository
	clk  clock.Clock
}

func NewListPatientAppointments(
	repo domain.Repository,
	clk clock.Clock,
) *ListPatientAppointments {
	return &ListPatientAppointments{
		repo: repo,
		clk:  clk,
	}
}

// Execute groups the patient's appointments into upcoming, past and
// cancelled. A single now is read once and shared across every
// classification so the whole listing agrees with itself.
func (uc *ListPatientAppointments) Execute(
	ctx context.Context,
	patientID uint,
) (*dto.GroupedAppointments, error) {

	appointments, err := uc.repo.ListAppointmentsForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	now := uc.clk.Now()

	out := &dto.GroupedAppointments{
		Upcoming:  []dto.AppointmentListDTO{},
		Past:      []dto.AppointmentListDTO{},
		Cancelled: []dto.AppointmentListDTO{},
	}

	for i := range appointments {
		ap := &appointments[i]

		item := dto.AppointmentListDTO{
			ID:               ap.ID,
			Reference:        ap.Reference,
			DoctorName:       ap.Doctor.Name,
			Specialty:        ap.Doctor.Specialty,
			AppointmentDate:  ap.AppointmentDate,
			AppointmentTime:  ap.AppointmentTime,
			Status:           ap.Status,
			Reason:           ap.Reason,
			CanLeaveFeedback: domain.CanLeaveFeedback(ap, now),
		}

		switch domain.Classify(ap, now) {
		case domain.BucketUpcoming:
			out.Upcoming = append(out.Upcoming, item)
		case domain.BucketCancelled:
			out.Cancelled = append(out.Cancelled, item)
		default:
			out.Past = append(out.Past, item)
		}
	}

	return out, nil
}
