package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/httpresp"
	"github.com/merciahealth/patient-portal/internal/models"
	ucSchedule "github.com/merciahealth/patient-portal/internal/usecase/schedule"
)

// AvailabilityHandler is the public browse surface: the doctor directory and
// the bookable slots of one doctor on one date.
type AvailabilityHandler struct {
	db             *gorm.DB
	repo           domain.Repository
	availabilityUC *ucSchedule.GetAvailability
}

func NewAvailabilityHandler(
	db *gorm.DB,
	repo domain.Repository,
	availabilityUC *ucSchedule.GetAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:             db,
		repo:           repo,
		availabilityUC: availabilityUC,
	}
}

func (h *AvailabilityHandler) ListDoctors(c *gin.Context) {
	specialty := strings.TrimSpace(strings.ToLower(c.Query("specialty")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("active = true")

	if specialty != "" {
		q = q.Where("LOWER(specialty) = ?", specialty)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ?", like)
	}

	var doctors []models.Doctor
	if err := q.Order("name ASC").Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not list doctors.")
		return
	}

	httpresp.List(c, doctors)
}

func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor id.")
		return
	}

	windows, err := h.repo.ListActiveWindows(c.Request.Context(), uint(doctorID))
	if err != nil {
		httperr.Internal(c, "failed_to_list_windows", "Could not list working hours.")
		return
	}

	httpresp.List(c, windows)
}

func (h *AvailabilityHandler) Availability(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor id.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), uint(doctorID), dateStr)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"doctor_id": doctorID,
		"date":      dateStr,
		"slots":     slots,
	})
}
