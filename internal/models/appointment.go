package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference is the public booking code shown to the patient.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	PatientID uint    `gorm:"index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint   `gorm:"index:idx_doctor_slot,priority:1" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	// Calendar date "2006-01-02" and slot time "15:04", kept as separate
	// columns so the partial unique index on (doctor, date, time) can back
	// the no-double-booking invariant.
	AppointmentDate string `gorm:"size:10;index:idx_doctor_slot,priority:2" json:"appointment_date"`
	AppointmentTime string `gorm:"size:5;index:idx_doctor_slot,priority:3" json:"appointment_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Reason string `gorm:"size:255" json:"reason"`
	Notes  string `gorm:"type:text" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
