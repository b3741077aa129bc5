package models

import (
	"time"
)

type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a booking made through the public form. The doctor is kept
// both as the display name the patient picked and, when the name resolves to
// a doctors row, as a foreign key used for rating aggregation. An appointment
// belongs to a user only by exact email match.
type Appointment struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	Service         string            `json:"service"`
	Doctor          string            `json:"doctor"`
	DoctorID        *uint             `json:"doctorId,omitempty"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Name            string            `json:"name"`
	Phone           string            `json:"phone"`
	Email           string            `json:"email" gorm:"index"`
	Message         string            `json:"message,omitempty"`
	UserID          string            `json:"userId,omitempty"`
	Status          AppointmentStatus `json:"status"`
	ReferenceNumber string            `json:"referenceNumber" gorm:"index"`
	IsRated         bool              `json:"isRated"`
	Rating          *int              `json:"rating"`
	Review          *string           `json:"review"`
	RatedAt         *time.Time        `json:"ratedAt"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Occupies reports whether the appointment blocks its time slot. Cancelled
// appointments free the slot; anything else keeps it taken.
func (a *Appointment) Occupies() bool {
	return a.Status != StatusCancelled
}
