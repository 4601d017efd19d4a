package schedule

import (
	"time"

	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Canonical(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Canonical(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Reject(ap *models.Appointment) error {
	if err := CanReject(Canonical(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	return nil
}

// Complete moves a confirmed appointment whose datetime has passed to
// completed.
func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Canonical(ap.Status)); err != nil {
		return err
	}

	at, err := ParseDateTime(ap.AppointmentDate, ap.AppointmentTime, now.Location())
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	if at.After(now) {
		return httperr.ErrBusiness("not_yet_due")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Reschedule replaces the slot and keeps the booking pending. The caller is
// responsible for re-admitting the new slot through the same guards as a
// fresh booking first.
func Reschedule(ap *models.Appointment, newDate, newTime string) error {
	if err := CanReschedule(Canonical(ap.Status)); err != nil {
		return err
	}

	ap.AppointmentDate = newDate
	ap.AppointmentTime = newTime
	ap.Status = string(StatusPending)
	return nil
}
