package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/httpresp"
	"github.com/merciahealth/patient-portal/internal/middleware"
	"github.com/merciahealth/patient-portal/internal/models"
	ucSchedule "github.com/merciahealth/patient-portal/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	bookUC       *ucSchedule.BookAppointment
	cancelUC     *ucSchedule.CancelAppointment
	rescheduleUC *ucSchedule.RescheduleAppointment
	listUC       *ucSchedule.ListPatientAppointments
}

func NewAppointmentHandler(
	db *gorm.DB,
	bookUC *ucSchedule.BookAppointment,
	cancelUC *ucSchedule.CancelAppointment,
	rescheduleUC *ucSchedule.RescheduleAppointment,
	listUC *ucSchedule.ListPatientAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		bookUC:       bookUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or invalid fields.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucSchedule.BookAppointmentInput{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Reason:    req.Reason,
	})
	if err != nil {
		if httperr.IsBusiness(err, "outside_working_hours") {
			h.writeWorkingHours(c, req.DoctorID, req.Date)
			return
		}
		writeScheduleError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST (grouped)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	grouped, err := h.listUC.Execute(c.Request.Context(), patientID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, grouped)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), uint(id), patientID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment id.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or invalid fields.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucSchedule.RescheduleAppointmentInput{
		AppointmentID: uint(id),
		PatientID:     patientID,
		NewDate:       req.Date,
		NewTime:       req.Time,
	})
	if err != nil {
		if httperr.IsBusiness(err, "outside_working_hours") {
			var current models.Appointment
			if e := h.db.First(&current, uint(id)).Error; e == nil {
				h.writeWorkingHours(c, current.DoctorID, req.Date)
				return
			}
		}
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// writeWorkingHours surfaces the doctor's hours for the requested day
// alongside the rejection, so the patient can pick a valid time.
func (h *AppointmentHandler) writeWorkingHours(c *gin.Context, doctorID uint, dateStr string) {
	weekday := ""
	if d, err := time.Parse("2006-01-02", dateStr); err == nil {
		weekday = d.Weekday().String()
	}

	var w models.AvailabilityWindow
	err := h.db.
		Where("doctor_id = ? AND LOWER(weekday) = LOWER(?) AND active = true", doctorID, weekday).
		First(&w).Error

	if err != nil || weekday == "" {
		httperr.BadRequest(c, "outside_working_hours",
			"The doctor has no working hours on that day.")
		return
	}

	httperr.BadRequest(c, "outside_working_hours",
		fmt.Sprintf("The doctor's hours on %s are %s-%s.", weekday, w.StartTime, w.EndTime))
}
