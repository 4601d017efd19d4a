package schedule

import (
	"context"

	"github.com/merciahealth/patient-portal/internal/audit"
	"github.com/merciahealth/patient-portal/internal/cache"
	"github.com/merciahealth/patient-portal/internal/clock"
	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clk   clock.Clock
	slots *cache.SlotCache
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
	slots *cache.SlotCache,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		clk:   clk,
		slots: slots,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	patientID uint,
) (*models.Appointment, error) {

	// Missing and not-owned look identical to the caller.
	ap, err := uc.repo.GetAppointmentForPatient(ctx, appointmentID, patientID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Cancel(ap, uc.clk.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.slots.Invalidate(ctx, ap.DoctorID, ap.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		ActorRole: "patient",
		ActorID:   &patientID,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
