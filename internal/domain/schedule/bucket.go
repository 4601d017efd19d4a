package schedule

import (
	"time"

	"github.com/merciahealth/patient-portal/internal/models"
)

type Bucket string

const (
	BucketUpcoming  Bucket = "upcoming"
	BucketPast      Bucket = "past"
	BucketCancelled Bucket = "cancelled"
)

// Classify buckets an appointment against the authoritative now. First match
// wins:
//  1. cancelled status wins regardless of date,
//  2. datetime before now is past,
//  3. a blocking status (pending/confirmed) is upcoming,
//  4. everything else (completed, rejected, unknown) is past.
//
// Pure function; now must come from the shared Clock.
func Classify(ap *models.Appointment, now time.Time) Bucket {
	status := Canonical(ap.Status)

	if status == StatusCancelled {
		return BucketCancelled
	}

	if at, err := ParseDateTime(ap.AppointmentDate, ap.AppointmentTime, now.Location()); err == nil {
		if at.Before(now) {
			return BucketPast
		}
	}

	if status.IsBlocking() {
		return BucketUpcoming
	}

	return BucketPast
}

// CanLeaveFeedback reports whether the visit already happened and was real:
// bucket past with a confirmed or completed status.
func CanLeaveFeedback(ap *models.Appointment, now time.Time) bool {
	if Classify(ap, now) != BucketPast {
		return false
	}

	status := Canonical(ap.Status)
	return status == StatusConfirmed || status == StatusCompleted
}
