package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/merciahealth/patient-portal/internal/clock"
)

// Completer is the one repository capability the sweep needs.
type Completer interface {
	CompleteDueAppointments(ctx context.Context, now time.Time) (int64, error)
}

// StartAutoComplete schedules the sweep that moves confirmed appointments
// whose datetime has passed to completed. Staff can still complete a visit
// by hand; this job just catches the ones nobody touched.
func StartAutoComplete(spec string, repo Completer, clk clock.Clock) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		RunAutoComplete(repo, clk)
	})
	if err != nil {
		log.Printf("invalid autocomplete cron spec %q: %v", spec, err)
		return c
	}

	c.Start()
	return c
}

func RunAutoComplete(repo Completer, clk clock.Clock) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := repo.CompleteDueAppointments(ctx, clk.Now())
	if err != nil {
		log.Println("autocomplete sweep failed:", err)
		return
	}

	if n > 0 {
		log.Printf("autocomplete: marked %d appointment(s) completed", n)
	}
}
