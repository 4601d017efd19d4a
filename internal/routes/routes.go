package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merciahealth/patient-portal/internal/audit"
	"github.com/merciahealth/patient-portal/internal/cache"
	"github.com/merciahealth/patient-portal/internal/clock"
	"github.com/merciahealth/patient-portal/internal/config"
	"github.com/merciahealth/patient-portal/internal/handlers"
	infraRepo "github.com/merciahealth/patient-portal/internal/infra/repository"
	"github.com/merciahealth/patient-portal/internal/middleware"
	ucSchedule "github.com/merciahealth/patient-portal/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	clk clock.Clock,
	slots *cache.SlotCache,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	bookUC := ucSchedule.NewBookAppointment(
		scheduleRepo,
		auditDispatcher,
		clk,
		slots,
		cfg.SlotIntervalMinutes,
	)

	cancelUC := ucSchedule.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
		clk,
		slots,
	)

	rescheduleUC := ucSchedule.NewRescheduleAppointment(
		scheduleRepo,
		auditDispatcher,
		clk,
		slots,
		cfg.SlotIntervalMinutes,
	)

	reviewUC := ucSchedule.NewReviewAppointment(
		scheduleRepo,
		auditDispatcher,
		clk,
	)

	availabilityUC := ucSchedule.NewGetAvailability(
		scheduleRepo,
		clk,
		slots,
		cfg.SlotIntervalMinutes,
	)

	listUC := ucSchedule.NewListPatientAppointments(
		scheduleRepo,
		clk,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(db, scheduleRepo, availabilityUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		bookUC,
		cancelUC,
		rescheduleUC,
		listUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(db)
	staffHandler := handlers.NewStaffAppointmentHandler(db, reviewUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/doctors", availabilityHandler.ListDoctors)
			publicAPI.GET("/doctors/:id/windows", availabilityHandler.ListWindows)
			publicAPI.GET("/doctors/:id/availability", availabilityHandler.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.RegisterPatient)
		api.POST("/auth/login", authHandler.LoginPatient)
		api.POST("/auth/doctor/login", authHandler.LoginDoctor)

		// ------------------------------
		// PATIENT
		// ------------------------------
		patientAPI := api.Group("/me")
		patientAPI.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RolePatient))
		{
			patientAPI.GET("", meHandler.GetMe)

			patientAPI.POST("/appointments", appointmentHandler.Book)
			patientAPI.GET("/appointments", appointmentHandler.List)
			patientAPI.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			patientAPI.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		}

		// ------------------------------
		// DOCTOR / STAFF
		// ------------------------------
		staffAPI := api.Group("/staff")
		staffAPI.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RoleDoctor))
		{
			staffAPI.GET("/me", meHandler.GetMe)

			staffAPI.GET("/schedule", scheduleHandler.Get)
			staffAPI.PUT("/schedule", scheduleHandler.Update)

			staffAPI.GET("/appointments", staffHandler.ListByDate)
			staffAPI.PATCH("/appointments/:id/confirm", staffHandler.Confirm)
			staffAPI.PATCH("/appointments/:id/reject", staffHandler.Reject)
			staffAPI.PATCH("/appointments/:id/complete", staffHandler.Complete)

			staffAPI.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
