package models

import "time"

// AvailabilityWindow is one working window of a doctor on a named weekday.
// Times are local wall-clock "15:04" strings, no date component.
type AvailabilityWindow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`

	Weekday string `gorm:"size:10" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
