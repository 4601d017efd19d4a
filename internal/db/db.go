package db

import (
	"log"
	"time"

	"github.com/merciahealth/patient-portal/internal/config"
	"github.com/merciahealth/patient-portal/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Patient{},
		&models.Doctor{},
		&models.AvailabilityWindow{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Legacy spelling fixup, best effort.
	db.Exec(`
        UPDATE appointments
        SET status = 'cancelled'
        WHERE LOWER(status) = 'canceled'
    `)

	if err := ensureSlotIndex(db); err != nil {
		log.Fatalf("failed to create blocking-slot index: %v", err)
	}

	return db
}

// ensureSlotIndex creates the one index the no-double-booking invariant
// rests on: at most one row per (doctor, date, time) may hold a blocking
// status. Application-level checks remain advisory; this index is the
// authority under concurrency, so a creation failure (e.g. pre-existing
// duplicate blocking rows) must not pass silently.
func ensureSlotIndex(db *gorm.DB) error {
	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_doctor_blocking_slot
        ON appointments (doctor_id, appointment_date, appointment_time)
        WHERE status IN ('pending', 'confirmed')
    `).Error
}
