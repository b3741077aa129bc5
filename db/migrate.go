package db

import (
	"log"

	"github.com/smilecare/dental-clinic-api/models"
)

// Migrate runs AutoMigrate and creates the slot-uniqueness index. Expects
// Init to have been called (tests point DB at their own database first).
func Migrate() {
	err := DB.AutoMigrate(
		&models.Service{},
		&models.Doctor{},
		&models.User{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// At most one non-cancelled appointment per (doctor, date, time).
	// Doctor-less appointments are exempt. The insert itself is the
	// conflict check, so two concurrent bookings cannot both land.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
		ON appointments (doctor, "date", "time")
		WHERE status <> 'cancelled' AND doctor <> ''`).Error
	if err != nil {
		log.Fatal("Failed to create slot uniqueness index: ", err)
	}

	log.Println("✅ Migrations applied successfully!")
}
