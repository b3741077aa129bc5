package cron

import (
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/smilecare/dental-clinic-api/controllers"
)

// StartStatusSweep schedules the periodic active-to-completed sweep when
// STATUS_SWEEP_CRON is set (e.g. "*/15 * * * *"). Statuses are still
// materialized lazily on every read; the sweep only keeps rarely-read
// records from going stale.
func StartStatusSweep() {
	spec := os.Getenv("STATUS_SWEEP_CRON")
	if spec == "" {
		return
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		updated, err := controllers.SweepAppointmentStatuses(time.Now())
		if err != nil {
			log.Printf("Status sweep failed: %v", err)
			return
		}
		if updated > 0 {
			log.Printf("Status sweep completed %d appointments", updated)
		}
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Status sweep scheduler started")
}
