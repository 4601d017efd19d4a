package schedule

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/merciahealth/patient-portal/internal/audit"
	"github.com/merciahealth/patient-portal/internal/cache"
	"github.com/merciahealth/patient-portal/internal/clock"
	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID uint
	DoctorID  uint

	Date   string
	Time   string
	Reason string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	clk      clock.Clock
	slots    *cache.SlotCache
	interval int
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
	slots *cache.SlotCache,
	intervalMinutes int,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		audit:    audit,
		clk:      clk,
		slots:    slots,
		interval: intervalMinutes,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs every admission guard before any write. The repository's
// transactional insert is the authority for the conflict guard; the check
// here only gives the caller a fast answer.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	start, err := domain.ParseDateTime(in.Date, in.Time, uc.clk.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.clk.Now()
	if !start.After(now) {
		return nil, httperr.ErrBusiness("past_date")
	}

	window, err := uc.repo.GetWindowForDay(ctx, doctor.ID, domain.WeekdayName(start))
	if err != nil {
		return nil, err
	}
	if window == nil || !domain.ContainsSlot(*window, uc.interval, in.Time) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	taken, err := uc.repo.IsSlotTaken(
		ctx,
		doctor.ID, in.Date, in.Time,
		domain.BlockingStatuses(),
		0,
	)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	ap := &models.Appointment{
		Reference:       uuid.NewString(),
		PatientID:       in.PatientID,
		DoctorID:        doctor.ID,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Status:          string(domain.InitialStatus()),
		Reason:          strings.TrimSpace(in.Reason),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(audit.Event{
				ActorRole: "patient",
				ActorID:   &in.PatientID,
				Action:    "appointment_conflict",
				Entity:    "appointment",
				Metadata: map[string]any{
					"doctor_id": doctor.ID,
					"date":      in.Date,
					"time":      in.Time,
				},
			})
		}
		return nil, err
	}

	uc.slots.Invalidate(ctx, doctor.ID, in.Date)

	uc.audit.Dispatch(audit.Event{
		ActorRole: "patient",
		ActorID:   &in.PatientID,
		Action:    "appointment_booked",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
