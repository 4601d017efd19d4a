package schedule

import (
	"strings"

	"github.com/merciahealth/patient-portal/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// Canonical folds case and resolves known synonyms. Stored rows arrive with
// inconsistent casing ("Cancelled", "canceled"); normalization happens once
// here, at the storage boundary, never at call sites.
func Canonical(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "canceled" {
		return StatusCancelled
	}
	return Status(s)
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// BlockingStatuses are the statuses that count toward double-booking
// conflicts.
func BlockingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Transition guards
// ===============================

// CanCancel allows patient cancellation from any non-terminal state.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReschedule only applies to pending bookings; a confirmed slot has to be
// cancelled and re-booked.
func CanReschedule(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanConfirm and CanReject apply to exactly pending so staff cannot
// double-process or un-confirm.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
