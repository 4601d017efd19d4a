package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merciahealth/patient-portal/internal/cache"
	"github.com/merciahealth/patient-portal/internal/clock"
	"github.com/merciahealth/patient-portal/internal/config"
	dbpkg "github.com/merciahealth/patient-portal/internal/db"
	infraRepo "github.com/merciahealth/patient-portal/internal/infra/repository"
	"github.com/merciahealth/patient-portal/internal/jobs"
	"github.com/merciahealth/patient-portal/internal/middleware"
	"github.com/merciahealth/patient-portal/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	clk := clock.System(cfg.Timezone)
	slots := cache.NewSlotCache(cfg.RedisAddr)

	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	jobs.StartAutoComplete(cfg.AutoCompleteSpec, scheduleRepo, clk)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, clk, slots)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
