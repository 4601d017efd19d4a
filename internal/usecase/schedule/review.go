package schedule

import (
	"context"

	"github.com/merciahealth/patient-portal/internal/audit"
	"github.com/merciahealth/patient-portal/internal/clock"
	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/models"
)

// ReviewAppointment covers the staff decisions on a pending booking:
// confirm, reject, and marking a confirmed visit completed.
type ReviewAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clk   clock.Clock
}

func NewReviewAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *ReviewAppointment {
	return &ReviewAppointment{
		repo:  repo,
		audit: audit,
		clk:   clk,
	}
}

func (uc *ReviewAppointment) Confirm(
	ctx context.Context,
	appointmentID uint,
	doctorID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, appointmentID, doctorID, "appointment_confirmed",
		func(ap *models.Appointment) error {
			return domain.Confirm(ap)
		})
}

func (uc *ReviewAppointment) Reject(
	ctx context.Context,
	appointmentID uint,
	doctorID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, appointmentID, doctorID, "appointment_rejected",
		func(ap *models.Appointment) error {
			return domain.Reject(ap)
		})
}

func (uc *ReviewAppointment) Complete(
	ctx context.Context,
	appointmentID uint,
	doctorID uint,
) (*models.Appointment, error) {
	now := uc.clk.Now()
	return uc.apply(ctx, appointmentID, doctorID, "appointment_completed",
		func(ap *models.Appointment) error {
			return domain.Complete(ap, now)
		})
}

func (uc *ReviewAppointment) apply(
	ctx context.Context,
	appointmentID uint,
	doctorID uint,
	action string,
	transition func(*models.Appointment) error,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForDoctor(ctx, appointmentID, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := transition(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "doctor",
		ActorID:   &doctorID,
		Action:    action,
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
