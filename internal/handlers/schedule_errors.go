package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/merciahealth/patient-portal/internal/httperr"
)

// writeScheduleError maps scheduling business codes onto HTTP responses.
// Storage failures never leak detail to the caller; they get logged and
// surfaced as a generic retryable error.
func writeScheduleError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		log.Println("schedule storage error:", err)
		httperr.Internal(c, "internal_error", "Something went wrong, please retry.")
		return
	}

	switch code {
	case "invalid_request":
		httperr.BadRequest(c, code, "Missing or invalid fields.")
	case "invalid_date_or_time":
		httperr.BadRequest(c, code, "Date or time is invalid.")
	case "past_date":
		httperr.BadRequest(c, code, "The requested slot is not in the future.")
	case "outside_working_hours":
		httperr.BadRequest(c, code, "The requested time is outside the doctor's working hours.")
	case "slot_unavailable":
		httperr.Conflict(c, code, "That slot is no longer available. Please pick another one.")
	case "doctor_not_found":
		httperr.NotFound(c, code, "Doctor not found.")
	case "appointment_not_found":
		httperr.NotFound(c, code, "Appointment not found.")
	case "invalid_state":
		httperr.BadRequest(c, code, "The appointment cannot change state from its current status.")
	case "not_yet_due":
		httperr.BadRequest(c, code, "The appointment time has not passed yet.")
	default:
		httperr.BadRequest(c, code, "Request could not be processed.")
	}
}
