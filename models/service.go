package models

import (
	"time"
)

type Service struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Details     string    `json:"details,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Price       string    `json:"price,omitempty"`
	Specialties []string  `json:"specialties,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
