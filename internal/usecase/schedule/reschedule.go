package schedule

import (
	"context"
	"strings"

	"github.com/merciahealth/patient-portal/internal/audit"
	"github.com/merciahealth/patient-portal/internal/cache"
	"github.com/merciahealth/patient-portal/internal/clock"
	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/models"
)

type RescheduleAppointmentInput struct {
	AppointmentID uint
	PatientID     uint

	NewDate string
	NewTime string
}

type RescheduleAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	clk      clock.Clock
	slots    *cache.SlotCache
	interval int
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
	slots *cache.SlotCache,
	intervalMinutes int,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		audit:    audit,
		clk:      clk,
		slots:    slots,
		interval: intervalMinutes,
	}
}

// Execute re-admits the appointment through the same guards as a fresh
// booking: moving a slot carries exactly the same conflict risk as creating
// one. The only difference is that the appointment's own row never conflicts
// with itself.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	in.NewDate = strings.TrimSpace(in.NewDate)
	in.NewTime = strings.TrimSpace(in.NewTime)
	if in.NewDate == "" || in.NewTime == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	ap, err := uc.repo.GetAppointmentForPatient(ctx, in.AppointmentID, in.PatientID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReschedule(domain.Canonical(ap.Status)); err != nil {
		return nil, err
	}

	start, err := domain.ParseDateTime(in.NewDate, in.NewTime, uc.clk.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.clk.Now()
	if !start.After(now) {
		return nil, httperr.ErrBusiness("past_date")
	}

	window, err := uc.repo.GetWindowForDay(ctx, ap.DoctorID, domain.WeekdayName(start))
	if err != nil {
		return nil, err
	}
	if window == nil || !domain.ContainsSlot(*window, uc.interval, in.NewTime) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	taken, err := uc.repo.IsSlotTaken(
		ctx,
		ap.DoctorID, in.NewDate, in.NewTime,
		domain.BlockingStatuses(),
		ap.ID,
	)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	oldDate := ap.AppointmentDate

	if err := domain.Reschedule(ap, in.NewDate, in.NewTime); err != nil {
		return nil, err
	}

	if err := uc.repo.RescheduleAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.slots.Invalidate(ctx, ap.DoctorID, oldDate, in.NewDate)

	uc.audit.Dispatch(audit.Event{
		ActorRole: "patient",
		ActorID:   &in.PatientID,
		Action:    "appointment_rescheduled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"from_date": oldDate,
			"to_date":   in.NewDate,
			"to_time":   in.NewTime,
		},
	})

	return ap, nil
}
