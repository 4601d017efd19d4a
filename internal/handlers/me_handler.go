package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merciahealth/patient-portal/internal/middleware"
	"github.com/merciahealth/patient-portal/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	switch c.GetString(middleware.ContextUserRole) {
	case middleware.RoleDoctor:
		var doctor models.Doctor
		if err := h.db.First(&doctor, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "doctor_not_found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"doctor": gin.H{
				"id":        doctor.ID,
				"name":      doctor.Name,
				"email":     doctor.Email,
				"phone":     doctor.Phone,
				"specialty": doctor.Specialty,
			},
		})

	default:
		var patient models.Patient
		if err := h.db.First(&patient, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "patient_not_found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"patient": gin.H{
				"id":    patient.ID,
				"name":  patient.Name,
				"email": patient.Email,
				"phone": patient.Phone,
			},
		})
	}
}
