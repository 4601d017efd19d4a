package schedule

import (
	"context"
	"time"

	"github.com/merciahealth/patient-portal/internal/models"
)

type Repository interface {
	// -------- Doctor --------
	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	// -------- Availability --------
	ListActiveWindows(
		ctx context.Context,
		doctorID uint,
	) ([]models.AvailabilityWindow, error)

	GetWindowForDay(
		ctx context.Context,
		doctorID uint,
		weekday string,
	) (*models.AvailabilityWindow, error)

	// -------- Conflict / admission --------
	IsSlotTaken(
		ctx context.Context,
		doctorID uint,
		date string,
		timeOfDay string,
		blocking []Status,
		excludeID uint,
	) (bool, error)

	// CreateAppointment commits a booking inside one transaction: it
	// re-checks the slot under a row lock and treats a unique violation on
	// the blocking-slot index as the authoritative conflict signal.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleAppointment persists an appointment already moved to its new
	// slot, under the same transactional discipline as a fresh booking, with
	// the appointment's own row excluded from the conflict check.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForPatient(
		ctx context.Context,
		appointmentID uint,
		patientID uint,
	) (*models.Appointment, error)

	GetAppointmentForDoctor(
		ctx context.Context,
		appointmentID uint,
		doctorID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForDoctorDay(
		ctx context.Context,
		doctorID uint,
		date string,
	) ([]models.Appointment, error)

	// CompleteDueAppointments moves every confirmed appointment whose
	// datetime is at or before now to completed. Returns the number of rows
	// changed.
	CompleteDueAppointments(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
