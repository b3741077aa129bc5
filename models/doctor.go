package models

import (
	"time"
)

// Doctor describes a clinic doctor. Services and ServiceIDs are the two
// legacy ways a doctor is linked to services; specialty overlap is the
// third. All three are checked when cross-referencing.
type Doctor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Specialty   string    `json:"specialty"`
	Photo       string    `json:"photo,omitempty"`
	Experience  string    `json:"experience,omitempty"`
	Education   string    `json:"education,omitempty"`
	Description string    `json:"description,omitempty"`
	Services    []string  `json:"services" gorm:"serializer:json"`
	ServiceIDs  []uint    `json:"serviceIds" gorm:"serializer:json"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"ratingCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProvidesService reports whether the doctor offers the service, matched by
// service name, service id, or specialty overlap.
func (d *Doctor) ProvidesService(s *Service) bool {
	for _, name := range d.Services {
		if name == s.Name {
			return true
		}
	}
	for _, id := range d.ServiceIDs {
		if id == s.ID {
			return true
		}
	}
	if d.Specialty != "" {
		for _, sp := range s.Specialties {
			if sp == d.Specialty {
				return true
			}
		}
	}
	return false
}
