package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service category constants
const (
	ServiceCategoryCoiffure  = "COIFFURE"
	ServiceCategoryTattouage = "TATTOUAGE"
	ServiceCategoryPiercing  = "PIERCING"
	ServiceCategoryCils      = "CILS"
)

// Service represents a salon service that can be booked. DurationMin
// drives how many base slots an appointment of this service occupies.
type Service struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Category    string   `gorm:"size:30;not null;index" json:"category"`
	DurationMin int      `gorm:"not null" json:"duration_min"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `gorm:"type:text" json:"description,omitempty"`

	Appointments []Appointment `gorm:"foreignKey:ServiceID" json:"appointments,omitempty"`
}

// BeforeCreate hook to generate UUID
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Service model
func (Service) TableName() string {
	return "services"
}

// IsValidServiceCategory checks if the category is valid
func IsValidServiceCategory(category string) bool {
	validCategories := []string{
		ServiceCategoryCoiffure,
		ServiceCategoryTattouage,
		ServiceCategoryPiercing,
		ServiceCategoryCils,
	}
	for _, c := range validCategories {
		if c == category {
			return true
		}
	}
	return false
}

// NeededSlots returns how many base slots of the given duration an
// appointment of this service must occupy (always at least one).
func (s *Service) NeededSlots(baseSlotMinutes int) int {
	if baseSlotMinutes <= 0 {
		return 1
	}
	needed := (s.DurationMin + baseSlotMinutes - 1) / baseSlotMinutes
	if needed < 1 {
		return 1
	}
	return needed
}
