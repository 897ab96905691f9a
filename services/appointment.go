package services

import (
	"errors"
	"fmt"
	"time"

	"salon_booking_go/models"

	"gorm.io/gorm"
)

// BookingRequest carries a pre-validated public booking: client info,
// the chosen service and the first slot of the run to occupy.
type BookingRequest struct {
	Lastname    string
	Firstname   string
	Phone       string
	Email       *string
	Note        *string
	ServiceID   string
	StartSlotID string
}

// slotsByDate orders the preloaded slots of an appointment.
func slotsByDate(db *gorm.DB) *gorm.DB {
	return db.Order("date asc")
}

// BookAppointment books a contiguous run of slots for a service,
// starting at the requested slot. Preconditions are checked in order:
// service exists, start slot exists, start slot is not blocked, not
// already booked and not in the past. The run is selected by walking
// the start slot's day forward, requiring each next slot to be free,
// unblocked and exactly one base slot duration after the previous one;
// a gap terminates the walk. The final claim re-checks every slot's
// free state inside the transaction, so a concurrent booking of any
// slot in the run aborts this one with a conflict.
func BookAppointment(db *gorm.DB, tpl ScheduleTemplate, req BookingRequest) (*models.Appointment, error) {
	var service models.Service
	err := db.First(&service, "id = ?", req.ServiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: service %s", ErrNotFound, req.ServiceID)
	}
	if err != nil {
		return nil, internalErr("book: load service", err)
	}

	var startSlot models.Slot
	err = db.First(&startSlot, "id = ?", req.StartSlotID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, req.StartSlotID)
	}
	if err != nil {
		return nil, internalErr("book: load start slot", err)
	}

	if startSlot.IsBlocked {
		return nil, fmt.Errorf("%w: slot is blocked", ErrForbidden)
	}
	if startSlot.IsBooked {
		return nil, fmt.Errorf("%w: slot is already booked", ErrConflict)
	}
	if startSlot.Date.Before(time.Now()) {
		return nil, fmt.Errorf("%w: slot is in the past", ErrInvalidRequest)
	}

	neededSlots := service.NeededSlots(tpl.SlotDurationMin)

	dayStart, nextDay := dayWindow(startSlot.Date)
	var sameDaySlots []models.Slot
	err = db.Where("date >= ? AND date < ?", dayStart, nextDay).
		Order("date asc").
		Find(&sameDaySlots).Error
	if err != nil {
		return nil, internalErr("book: load day slots", err)
	}

	index := -1
	for i, s := range sameDaySlots {
		if s.ID == startSlot.ID {
			index = i
			break
		}
	}
	if index == -1 {
		// The start slot vanished from its own day's listing: a
		// concurrent mutation or data corruption.
		return nil, fmt.Errorf("%w: start slot missing from its day", ErrConflict)
	}

	var chosen []models.Slot
	for i := index; i < len(sameDaySlots) && len(chosen) < neededSlots; i++ {
		slot := sameDaySlots[i]
		if len(chosen) > 0 {
			prev := chosen[len(chosen)-1]
			if slot.Date.Sub(prev.Date) != tpl.SlotDuration() {
				break // gap in the run
			}
		}
		if !slot.IsFree() {
			break
		}
		chosen = append(chosen, slot)
	}
	if len(chosen) < neededSlots {
		return nil, fmt.Errorf("%w: insufficient contiguous slots (need %d, found %d)",
			ErrConflict, neededSlots, len(chosen))
	}

	appointment := &models.Appointment{
		Lastname:  SanitizeText(req.Lastname),
		Firstname: SanitizeText(req.Firstname),
		Phone:     SanitizeText(req.Phone),
		Email:     SanitizeTextPtr(req.Email),
		Note:      SanitizeTextPtr(req.Note),
		ServiceID: service.ID,
	}

	slotIDs := make([]string, len(chosen))
	for i, s := range chosen {
		slotIDs[i] = s.ID
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(appointment).Error; err != nil {
			return err
		}
		// Conditional claim: only rows still free and unblocked are
		// updated. Fewer rows than requested means a concurrent booking
		// or block won the race.
		res := tx.Model(&models.Slot{}).
			Where("id IN ? AND is_booked = ? AND is_blocked = ?", slotIDs, false, false).
			Updates(map[string]interface{}{
				"is_booked":      true,
				"appointment_id": appointment.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(slotIDs)) {
			return fmt.Errorf("%w: slots were claimed by a concurrent booking", ErrConflict)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, internalErr("book: transaction", err)
	}

	return GetAppointmentByID(db, appointment.ID)
}

// GetAppointmentByID fetches a single appointment with its service and
// slots ordered by time.
func GetAppointmentByID(db *gorm.DB, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := db.Preload("Service").Preload("Slots", slotsByDate).
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, internalErr("get appointment", err)
	}
	return &appointment, nil
}

// AppointmentFilter narrows an appointment listing.
type AppointmentFilter struct {
	FromDate  *time.Time
	ServiceID *string
}

// ListAppointments fetches appointments newest first, with service and
// slots preloaded.
func ListAppointments(db *gorm.DB, filter AppointmentFilter) ([]models.Appointment, error) {
	query := db.Model(&models.Appointment{})
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}

	var appointments []models.Appointment
	err := query.
		Preload("Service").Preload("Slots", slotsByDate).
		Order("created_at desc").
		Find(&appointments).Error
	if err != nil {
		return nil, internalErr("list appointments", err)
	}
	return appointments, nil
}

// AppointmentUpdate carries the mutable appointment fields; nil means
// leave unchanged. Occupied slots are not resized here.
type AppointmentUpdate struct {
	Lastname  *string
	Firstname *string
	Phone     *string
	Email     *string
	Note      *string
	ServiceID *string
}

// UpdateAppointment updates an appointment's client fields and service
// reference.
func UpdateAppointment(db *gorm.DB, id string, update AppointmentUpdate) (*models.Appointment, error) {
	appointment, err := GetAppointmentByID(db, id)
	if err != nil {
		return nil, err
	}

	if update.ServiceID != nil && *update.ServiceID != appointment.ServiceID {
		var count int64
		if err := db.Model(&models.Service{}).Where("id = ?", *update.ServiceID).Count(&count).Error; err != nil {
			return nil, internalErr("update appointment: check service", err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: service %s", ErrNotFound, *update.ServiceID)
		}
	}

	updates := map[string]interface{}{}
	if update.Lastname != nil {
		updates["lastname"] = SanitizeText(*update.Lastname)
	}
	if update.Firstname != nil {
		updates["firstname"] = SanitizeText(*update.Firstname)
	}
	if update.Phone != nil {
		updates["phone"] = SanitizeText(*update.Phone)
	}
	if update.Email != nil {
		updates["email"] = SanitizeTextPtr(update.Email)
	}
	if update.Note != nil {
		updates["note"] = SanitizeTextPtr(update.Note)
	}
	if update.ServiceID != nil {
		updates["service_id"] = *update.ServiceID
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, internalErr("update appointment", err)
		}
	}
	return GetAppointmentByID(db, id)
}

// DeleteAppointment removes an appointment and releases its slots:
// every occupied slot is unbooked and unlinked in the same transaction,
// making it immediately eligible for rebooking.
func DeleteAppointment(db *gorm.DB, id string) error {
	appointment, err := GetAppointmentByID(db, id)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Slot{}).
			Where("appointment_id = ?", appointment.ID).
			Updates(map[string]interface{}{
				"is_booked":      false,
				"appointment_id": nil,
			}).Error; err != nil {
			return err
		}
		return tx.Delete(appointment).Error
	})
	if err != nil {
		return internalErr("delete appointment", err)
	}
	return nil
}
