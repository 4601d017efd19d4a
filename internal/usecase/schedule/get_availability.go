package schedule

import (
	"context"
	"time"

	"github.com/merciahealth/patient-portal/internal/cache"
	"github.com/merciahealth/patient-portal/internal/clock"
	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
)

type GetAvailability struct {
	repo     domain.Repository
	clk      clock.Clock
	slots    *cache.SlotCache
	interval int
}

func NewGetAvailability(
	repo domain.Repository,
	clk clock.Clock,
	slots *cache.SlotCache,
	intervalMinutes int,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		clk:      clk,
		slots:    slots,
		interval: intervalMinutes,
	}
}

// Execute returns the bookable slots of one doctor on one date: the full
// window run, minus slots held by a blocking-status appointment, minus slots
// already elapsed when the date is today.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID uint,
	dateStr string,
) ([]domain.TimeSlot, error) {

	date, err := domain.ParseDate(dateStr, uc.clk.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if cached, ok := uc.slots.Get(ctx, doctorID, dateStr); ok {
		return cached, nil
	}

	window, err := uc.repo.GetWindowForDay(ctx, doctorID, domain.WeekdayName(date))
	if err != nil {
		return nil, err
	}
	if window == nil {
		return []domain.TimeSlot{}, nil
	}

	booked, err := uc.repo.ListAppointmentsForDoctorDay(ctx, doctorID, dateStr)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, ap := range booked {
		if domain.Canonical(ap.Status).IsBlocking() {
			taken[ap.AppointmentTime] = true
		}
	}

	now := uc.clk.Now()
	today := now.Format(domain.DateLayout) == dateStr

	out := []domain.TimeSlot{}
	for _, start := range domain.Slots(*window, uc.interval) {
		if taken[start] {
			continue
		}

		if today {
			at, err := domain.ParseDateTime(dateStr, start, uc.clk.Location())
			if err != nil || !at.After(now) {
				continue
			}
		}

		end, _ := time.Parse(domain.TimeLayout, start)
		out = append(out, domain.TimeSlot{
			Start: start,
			End:   end.Add(time.Duration(uc.interval) * time.Minute).Format(domain.TimeLayout),
		})
	}

	uc.slots.Set(ctx, doctorID, dateStr, out)

	return out, nil
}
