package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment represents a client booking spanning one or more
// time-contiguous slots. Deleting an appointment releases its slots
// (unbook and unlink) rather than deleting them.
type Appointment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Client info
	Lastname  string  `gorm:"size:100;not null" json:"lastname"`
	Firstname string  `gorm:"size:100;not null" json:"firstname"`
	Phone     string  `gorm:"size:20;not null" json:"phone"`
	Email     *string `gorm:"size:255" json:"email,omitempty"`
	Note      *string `gorm:"type:text" json:"note,omitempty"`

	// Service relationship
	ServiceID string  `gorm:"type:uuid;index;not null" json:"service_id"`
	Service   Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	// Occupied slots, contiguous in time, ordered by date when loaded
	Slots []Slot `gorm:"foreignKey:AppointmentID" json:"slots,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// ClientName returns the client's full name for notifications and exports.
func (a *Appointment) ClientName() string {
	return a.Firstname + " " + a.Lastname
}

// StartTime returns the timestamp of the earliest occupied slot, or the
// zero time if slots are not loaded.
func (a *Appointment) StartTime() time.Time {
	var start time.Time
	for _, s := range a.Slots {
		if start.IsZero() || s.Date.Before(start) {
			start = s.Date
		}
	}
	return start
}
