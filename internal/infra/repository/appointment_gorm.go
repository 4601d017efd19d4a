package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *ScheduleGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", id).
		First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ScheduleGormRepository) ListActiveWindows(
	ctx context.Context,
	doctorID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND active = true", doctorID).
		Order("id ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *ScheduleGormRepository) GetWindowForDay(
	ctx context.Context,
	doctorID uint,
	weekday string,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND LOWER(weekday) = LOWER(?) AND active = true", doctorID, weekday).
		First(&w).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// --------------------------------------------------
// Conflict / admission
// --------------------------------------------------

func (r *ScheduleGormRepository) IsSlotTaken(
	ctx context.Context,
	doctorID uint,
	date string,
	timeOfDay string,
	blocking []domain.Status,
	excludeID uint,
) (bool, error) {

	count, err := countBlocking(r.db.WithContext(ctx), doctorID, date, timeOfDay, blocking, excludeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func countBlocking(
	tx *gorm.DB,
	doctorID uint,
	date string,
	timeOfDay string,
	blocking []domain.Status,
	excludeID uint,
) (int64, error) {

	statuses := make([]string, 0, len(blocking))
	for _, s := range blocking {
		statuses = append(statuses, string(s))
	}

	q := tx.Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND LOWER(status) IN ?",
			doctorID, date, timeOfDay, statuses,
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// lockBlockingRows locks the blocking appointments on a slot and returns how
// many there are. Postgres refuses FOR UPDATE on aggregate queries, so the
// rows are fetched under the lock and counted here.
func lockBlockingRows(
	tx *gorm.DB,
	doctorID uint,
	date string,
	timeOfDay string,
	blocking []domain.Status,
	excludeID uint,
) (int64, error) {

	statuses := make([]string, 0, len(blocking))
	for _, s := range blocking {
		statuses = append(statuses, string(s))
	}

	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND LOWER(status) IN ?",
			doctorID, date, timeOfDay, statuses,
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var rows []models.Appointment
	if err := q.Find(&rows).Error; err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// --------------------------------------------------
// Appointment (create / reschedule)
// --------------------------------------------------

// CreateAppointment re-checks the slot under a row lock inside one
// transaction before inserting. A unique violation on the partial slot index
// still wins over the check and is mapped to the same conflict code.
func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		count, err := lockBlockingRows(
			tx,
			ap.DoctorID, ap.AppointmentDate, ap.AppointmentTime,
			domain.BlockingStatuses(), 0,
		)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		return tx.Create(ap).Error
	})

	if httperr.IsSlotIndexViolation(err) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return err
}

func (r *ScheduleGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		count, err := lockBlockingRows(
			tx,
			ap.DoctorID, ap.AppointmentDate, ap.AppointmentTime,
			domain.BlockingStatuses(), ap.ID,
		)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		return tx.Save(ap).Error
	})

	if httperr.IsSlotIndexViolation(err) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return err
}

// --------------------------------------------------
// Appointment (fetch / state change)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointmentForPatient(
	ctx context.Context,
	appointmentID uint,
	patientID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", appointmentID, patientID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	ap.Status = string(domain.Canonical(ap.Status))
	return &ap, nil
}

func (r *ScheduleGormRepository) GetAppointmentForDoctor(
	ctx context.Context,
	appointmentID uint,
	doctorID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", appointmentID, doctorID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	ap.Status = string(domain.Canonical(ap.Status))
	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	for i := range aps {
		aps[i].Status = string(domain.Canonical(aps[i].Status))
	}
	return aps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForDoctorDay(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date).
		Order("appointment_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	for i := range aps {
		aps[i].Status = string(domain.Canonical(aps[i].Status))
	}
	return aps, nil
}

// --------------------------------------------------
// Auto-completion
// --------------------------------------------------

func (r *ScheduleGormRepository) CompleteDueAppointments(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	date := now.Format(domain.DateLayout)
	timeOfDay := now.Format(domain.TimeLayout)

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"LOWER(status) = ? AND (appointment_date < ? OR (appointment_date = ? AND appointment_time <= ?))",
			string(domain.StatusConfirmed), date, date, timeOfDay,
		).
		Updates(map[string]any{
			"status":       string(domain.StatusCompleted),
			"completed_at": now,
			"updated_at":   now,
		})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
