package schedule

import (
	"sort"
	"time"

	"github.com/smilecare/dental-clinic-api/models"
)

// EffectiveStatus is the status an appointment should display right now. A
// stored "active" whose time has passed reads as "completed" even before the
// row has been rewritten. Terminal statuses pass through unchanged.
func EffectiveStatus(stored models.AppointmentStatus, date, slot string, now time.Time) models.AppointmentStatus {
	if stored == models.StatusActive && IsAppointmentOver(date, slot, now) {
		return models.StatusCompleted
	}
	return stored
}

// SortAppointments orders appointments latest first: date descending, then
// time descending, falling back to creation time when either side has no
// time.
func SortAppointments(appointments []models.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		a, b := appointments[i], appointments[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.Time != "" && b.Time != "" {
			return a.Time > b.Time
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
