package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/httpresp"
	"github.com/merciahealth/patient-portal/internal/middleware"
	"github.com/merciahealth/patient-portal/internal/models"
	ucSchedule "github.com/merciahealth/patient-portal/internal/usecase/schedule"
)

// StaffAppointmentHandler is the doctor-side surface: the day view and the
// confirm / reject / complete decisions.
type StaffAppointmentHandler struct {
	db       *gorm.DB
	reviewUC *ucSchedule.ReviewAppointment
}

func NewStaffAppointmentHandler(
	db *gorm.DB,
	reviewUC *ucSchedule.ReviewAppointment,
) *StaffAppointmentHandler {
	return &StaffAppointmentHandler{
		db:       db,
		reviewUC: reviewUC,
	}
}

func (h *StaffAppointmentHandler) ListByDate(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Preload("Patient").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, dateStr).
		Order("appointment_time ASC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, aps)
}

func (h *StaffAppointmentHandler) Confirm(c *gin.Context) {
	h.review(c, h.reviewUC.Confirm)
}

func (h *StaffAppointmentHandler) Reject(c *gin.Context) {
	h.review(c, h.reviewUC.Reject)
}

func (h *StaffAppointmentHandler) Complete(c *gin.Context) {
	h.review(c, h.reviewUC.Complete)
}

func (h *StaffAppointmentHandler) review(
	c *gin.Context,
	op func(ctx context.Context, appointmentID, doctorID uint) (*models.Appointment, error),
) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment id.")
		return
	}

	ap, err := op(c.Request.Context(), uint(id), doctorID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
