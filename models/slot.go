package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot represents a single bookable time slot in the salon calendar.
// The Date column carries a unique index: two slots can never share the
// same instant. That constraint is the authoritative guard against
// duplicate generation; the in-memory existence check in the autofill
// path is only an optimization.
type Slot struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Date        time.Time `gorm:"uniqueIndex;not null" json:"date"`
	IsBooked    bool      `gorm:"default:false;index" json:"is_booked"`
	IsBlocked   bool      `gorm:"default:false;index" json:"is_blocked"`
	BlockedNote *string   `gorm:"type:text" json:"blocked_note,omitempty"`

	// Set iff IsBooked. A blocked slot must never carry an appointment.
	AppointmentID *string      `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Appointment   *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

// BeforeCreate hook to generate UUID
func (s *Slot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Slot model
func (Slot) TableName() string {
	return "slots"
}

// IsFree reports whether the slot can still be claimed by a booking.
func (s *Slot) IsFree() bool {
	return !s.IsBooked && !s.IsBlocked
}

// DayStart returns midnight of the slot's calendar day.
func (s *Slot) DayStart() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, s.Date.Location())
}
