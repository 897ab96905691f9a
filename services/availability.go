package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"salon_booking_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBlockNote is used when a blocking operator is given no reason.
const DefaultBlockNote = "Indisponibilité"

// DefaultBlockDayNote is used when a whole day is blocked without a reason.
const DefaultBlockDayNote = "Blocage journée entière"

// AutofillResult reports what a generation pass did.
type AutofillResult struct {
	Created   int       `json:"created"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// dayWindow returns the [midnight, next midnight) window of t's calendar day.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// internalErr logs the underlying storage failure with its operation
// name and returns a classified internal error without leaking details.
func internalErr(op string, err error) error {
	log.Printf("%s: %v", op, err)
	return fmt.Errorf("%s: %w", op, ErrInternal)
}

// isDuplicateErr detects a unique-constraint violation on the slot date
// column, which the sqlite driver surfaces as a plain error string.
func isDuplicateErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// AutofillSlots fills the calendar with free slots over the coming
// monthsAhead months, starting at startFrom (or now when zero) truncated
// to midnight. Existing timestamps are loaded in one query and skipped,
// so re-invoking over an overlapping window never duplicates a slot; the
// unique index on the date column remains the authoritative guard under
// concurrent generation.
func AutofillSlots(db *gorm.DB, tpl ScheduleTemplate, monthsAhead int, startFrom time.Time) (*AutofillResult, error) {
	if monthsAhead <= 0 {
		return nil, fmt.Errorf("%w: monthsAhead must be positive", ErrInvalidRequest)
	}
	if startFrom.IsZero() {
		startFrom = time.Now()
	}
	startDate, _ := dayWindow(startFrom)
	endDate := startDate.AddDate(0, monthsAhead, 0)

	var existing []models.Slot
	if err := db.Select("date").
		Where("date >= ? AND date < ?", startDate, endDate).
		Find(&existing).Error; err != nil {
		return nil, internalErr("autofill: load existing slots", err)
	}
	existingSet := make(map[int64]struct{}, len(existing))
	for _, s := range existing {
		existingSet[s.Date.Unix()] = struct{}{}
	}

	var toCreate []models.Slot
	for d := startDate; d.Before(endDate); d = d.AddDate(0, 0, 1) {
		if !tpl.IsActiveWeekday(d) {
			continue
		}
		candidates, err := EnumerateDaySlots(d, tpl)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			if _, ok := existingSet[c.Unix()]; ok {
				continue
			}
			toCreate = append(toCreate, models.Slot{Date: c})
		}
	}

	result := &AutofillResult{StartDate: startDate, EndDate: endDate}
	if len(toCreate) == 0 {
		return result, nil
	}

	// ON CONFLICT DO NOTHING lets a concurrent generation pass win the
	// race on individual timestamps without failing the whole batch.
	res := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&toCreate, 200)
	if res.Error != nil {
		return nil, internalErr("autofill: insert slots", res.Error)
	}
	result.Created = int(res.RowsAffected)
	return result, nil
}

// CountSlotsInWindow counts slots in [from, to). Callers use it to skip
// autofill when the target window is already populated.
func CountSlotsInWindow(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Slot{}).
		Where("date >= ? AND date < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, internalErr("count slots in window", err)
	}
	return count, nil
}

// SlotFilter narrows and paginates a slot listing.
type SlotFilter struct {
	IsBooked  *bool
	IsBlocked *bool
	FromDate  *time.Time
	Page      int
	PageSize  int
}

// SlotPage is one page of a slot listing.
type SlotPage struct {
	Slots      []models.Slot `json:"slots"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// ListSlots fetches slots matching the filter, ordered by date ascending,
// with the linked appointment preloaded.
func ListSlots(db *gorm.DB, filter SlotFilter) (*SlotPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 100
	}
	if pageSize > 500 {
		pageSize = 500
	}

	query := db.Model(&models.Slot{})
	if filter.IsBooked != nil {
		query = query.Where("is_booked = ?", *filter.IsBooked)
	}
	if filter.IsBlocked != nil {
		query = query.Where("is_blocked = ?", *filter.IsBlocked)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, internalErr("list slots: count", err)
	}

	var slots []models.Slot
	err := query.
		Preload("Appointment").
		Order("date asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&slots).Error
	if err != nil {
		return nil, internalErr("list slots", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &SlotPage{
		Slots:      slots,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetSlotByID fetches a single slot with its appointment and service.
func GetSlotByID(db *gorm.DB, id string) (*models.Slot, error) {
	var slot models.Slot
	err := db.Preload("Appointment").Preload("Appointment.Service").
		First(&slot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, internalErr("get slot", err)
	}
	return &slot, nil
}

// CreateSlot creates a single ad-hoc slot at an explicit timestamp.
// Past timestamps and duplicates are rejected.
func CreateSlot(db *gorm.DB, date time.Time, isBlocked bool, blockedNote *string) (*models.Slot, error) {
	if date.Before(time.Now()) {
		return nil, fmt.Errorf("%w: slot date is in the past", ErrInvalidRequest)
	}

	var count int64
	if err := db.Model(&models.Slot{}).Where("date = ?", date).Count(&count).Error; err != nil {
		return nil, internalErr("create slot: duplicate check", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: a slot already exists at %s", ErrConflict, date)
	}

	slot := &models.Slot{
		Date:      date,
		IsBlocked: isBlocked,
	}
	if isBlocked {
		slot.BlockedNote = SanitizeTextPtr(blockedNote)
	}
	if err := db.Create(slot).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: a slot already exists at %s", ErrConflict, date)
		}
		return nil, internalErr("create slot", err)
	}
	return slot, nil
}

// SlotUpdate carries the mutable slot fields; nil means leave unchanged.
type SlotUpdate struct {
	Date        *time.Time
	IsBooked    *bool
	IsBlocked   *bool
	BlockedNote *string
}

// UpdateSlot mutates a slot's date/booked/blocked/note fields while
// defending the invariants: a booked flag always travels with its
// appointment link, and a slot carrying an appointment can never be blocked.
func UpdateSlot(db *gorm.DB, id string, update SlotUpdate) (*models.Slot, error) {
	slot, err := GetSlotByID(db, id)
	if err != nil {
		return nil, err
	}

	if update.Date != nil && !update.Date.Equal(slot.Date) {
		if slot.AppointmentID != nil {
			return nil, fmt.Errorf("%w: slot is linked to an appointment and cannot be moved", ErrConflict)
		}
		var count int64
		if err := db.Model(&models.Slot{}).
			Where("date = ? AND id != ?", *update.Date, id).
			Count(&count).Error; err != nil {
			return nil, internalErr("update slot: duplicate check", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: a slot already exists at %s", ErrConflict, *update.Date)
		}
		slot.Date = *update.Date
	}

	if update.IsBooked != nil {
		if !*update.IsBooked && slot.AppointmentID != nil {
			return nil, fmt.Errorf("%w: slot is linked to an appointment, delete the appointment instead", ErrConflict)
		}
		if *update.IsBooked && slot.AppointmentID == nil {
			return nil, fmt.Errorf("%w: a slot cannot be booked without an appointment", ErrConflict)
		}
		slot.IsBooked = *update.IsBooked
	}

	if update.IsBlocked != nil {
		if *update.IsBlocked && slot.AppointmentID != nil {
			return nil, fmt.Errorf("%w: slot is linked to an appointment and cannot be blocked", ErrConflict)
		}
		slot.IsBlocked = *update.IsBlocked
		if !slot.IsBlocked {
			slot.BlockedNote = nil
		}
	}

	if update.BlockedNote != nil && slot.IsBlocked {
		slot.BlockedNote = SanitizeTextPtr(update.BlockedNote)
	}

	if err := db.Omit(clause.Associations).Save(slot).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: a slot already exists at %s", ErrConflict, slot.Date)
		}
		return nil, internalErr("update slot", err)
	}
	return slot, nil
}

// DeleteSlot removes a slot unless it carries a booking.
func DeleteSlot(db *gorm.DB, id string) error {
	slot, err := GetSlotByID(db, id)
	if err != nil {
		return err
	}
	if slot.AppointmentID != nil || slot.IsBooked {
		return fmt.Errorf("%w: slot is linked to an appointment and cannot be deleted", ErrConflict)
	}
	if err := db.Delete(slot).Error; err != nil {
		return internalErr("delete slot", err)
	}
	return nil
}

// BlockDayResult reports what a day-level block did.
type BlockDayResult struct {
	Date          time.Time `json:"date"`
	Blocked       int       `json:"blocked"`
	SkippedBooked int       `json:"skipped_booked"`
}

// BlockDay withdraws a whole day from availability. The day's slots are
// generated first when absent. Slots already linked to an appointment
// are skipped rather than blocked, preserving the mutual-exclusion
// invariant, and reported in the result.
func BlockDay(db *gorm.DB, tpl ScheduleTemplate, day time.Time, note *string) (*BlockDayResult, error) {
	dayStart, nextDay := dayWindow(day)
	if !tpl.IsActiveWeekday(dayStart) {
		return nil, fmt.Errorf("%w: %s is not an active weekday", ErrInvalidRequest, dayStart.Weekday())
	}

	blockedNote := DefaultBlockDayNote
	if clean := SanitizeTextPtr(note); clean != nil {
		blockedNote = *clean
	}

	result := &BlockDayResult{Date: dayStart}
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Slot{}).
			Where("date >= ? AND date < ?", dayStart, nextDay).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			candidates, err := EnumerateDaySlots(dayStart, tpl)
			if err != nil {
				return err
			}
			toCreate := make([]models.Slot, 0, len(candidates))
			for _, c := range candidates {
				toCreate = append(toCreate, models.Slot{Date: c})
			}
			if len(toCreate) > 0 {
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&toCreate).Error; err != nil {
					return err
				}
			}
		}

		var skipped int64
		if err := tx.Model(&models.Slot{}).
			Where("date >= ? AND date < ? AND is_booked = ?", dayStart, nextDay, true).
			Count(&skipped).Error; err != nil {
			return err
		}
		result.SkippedBooked = int(skipped)

		res := tx.Model(&models.Slot{}).
			Where("date >= ? AND date < ? AND is_booked = ?", dayStart, nextDay, false).
			Updates(map[string]interface{}{
				"is_blocked":   true,
				"blocked_note": blockedNote,
			})
		if res.Error != nil {
			return res.Error
		}
		result.Blocked = int(res.RowsAffected)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			return nil, err
		}
		return nil, internalErr("block day", err)
	}
	return result, nil
}

// BlockRangeParams describes a multi-day blocking request. TimeSlots
// lists "HH:MM" times to block on each day; empty means the whole-day
// marker slot at midnight, matching how the admin calendar renders
// full-day closures.
type BlockRangeParams struct {
	StartDate time.Time
	EndDate   time.Time
	Note      *string
	TimeSlots []string
}

// SlotError is a per-slot failure inside a batch operator.
type SlotError struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// BlockRangeResult reports a batch block: how many slots were blocked or
// created pre-blocked, plus the per-slot errors that were skipped over.
type BlockRangeResult struct {
	Blocked int         `json:"blocked"`
	Errors  []SlotError `json:"errors,omitempty"`
}

// BlockRange blocks the requested times on every day in [StartDate,
// EndDate). Free slots are blocked in place, missing slots are created
// pre-blocked, and slots carrying an appointment are recorded as
// per-slot errors instead of failing the whole batch.
func BlockRange(db *gorm.DB, params BlockRangeParams) (*BlockRangeResult, error) {
	if params.StartDate.IsZero() || params.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidRequest)
	}
	if !params.StartDate.Before(params.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", ErrInvalidRequest)
	}
	now := time.Now()
	if params.StartDate.Before(now) {
		todayStart, _ := dayWindow(now)
		if params.StartDate.Before(todayStart) {
			return nil, fmt.Errorf("%w: start date cannot be in the past", ErrInvalidRequest)
		}
	}

	timeSlots := params.TimeSlots
	if len(timeSlots) == 0 {
		timeSlots = []string{"00:00"}
	}

	blockedNote := DefaultBlockNote
	if clean := SanitizeTextPtr(params.Note); clean != nil {
		blockedNote = *clean
	}

	result := &BlockRangeResult{}
	startDay, _ := dayWindow(params.StartDate)
	for day := startDay; day.Before(params.EndDate); day = day.AddDate(0, 0, 1) {
		for _, hm := range timeSlots {
			slotDate, err := ParseHM(day, hm)
			if err != nil {
				return nil, err
			}

			err = db.Transaction(func(tx *gorm.DB) error {
				var existing models.Slot
				findErr := tx.Where("date = ?", slotDate).First(&existing).Error
				if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
					return findErr
				}

				if findErr == nil {
					if existing.AppointmentID != nil || existing.IsBooked {
						result.Errors = append(result.Errors, SlotError{
							Date:   slotDate,
							Reason: "slot is linked to an appointment",
						})
						return nil
					}
					if err := tx.Model(&existing).Updates(map[string]interface{}{
						"is_blocked":   true,
						"blocked_note": blockedNote,
					}).Error; err != nil {
						return err
					}
					result.Blocked++
					return nil
				}

				created := models.Slot{
					Date:        slotDate,
					IsBlocked:   true,
					BlockedNote: &blockedNote,
				}
				if err := tx.Create(&created).Error; err != nil {
					return err
				}
				result.Blocked++
				return nil
			})
			if err != nil {
				log.Printf("block range: slot %s: %v", slotDate, err)
				result.Errors = append(result.Errors, SlotError{
					Date:   slotDate,
					Reason: "storage failure",
				})
			}
		}
	}
	return result, nil
}

// OverrideDayResult reports a day-template replacement.
type OverrideDayResult struct {
	Date            time.Time `json:"date"`
	Deleted         int       `json:"deleted"`
	Created         int       `json:"created"`
	PreservedBooked int       `json:"preserved_booked"`
}

// OverrideDay replaces one day's slot set with slots enumerated from a
// different set of time blocks. Slots carrying a booking are always
// preserved; the replacement set skips any timestamp still occupied by
// a preserved slot.
func OverrideDay(db *gorm.DB, tpl ScheduleTemplate, day time.Time, blocks []TimeBlock) (*OverrideDayResult, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: at least one time block is required", ErrInvalidRequest)
	}
	dayStart, nextDay := dayWindow(day)
	if !tpl.IsActiveWeekday(dayStart) {
		return nil, fmt.Errorf("%w: %s is not an active weekday", ErrInvalidRequest, dayStart.Weekday())
	}

	overrideTpl := ScheduleTemplate{
		Blocks:          blocks,
		SlotDurationMin: tpl.SlotDurationMin,
		ActiveWeekdays:  tpl.ActiveWeekdays,
	}
	candidates, err := EnumerateDaySlots(dayStart, overrideTpl)
	if err != nil {
		return nil, err
	}

	result := &OverrideDayResult{Date: dayStart}
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Slot
		if err := tx.Where("date >= ? AND date < ?", dayStart, nextDay).
			Find(&existing).Error; err != nil {
			return err
		}

		preserved := make(map[int64]struct{})
		for _, slot := range existing {
			if slot.AppointmentID != nil || slot.IsBooked {
				preserved[slot.Date.Unix()] = struct{}{}
				result.PreservedBooked++
				continue
			}
			if err := tx.Delete(&slot).Error; err != nil {
				return err
			}
			result.Deleted++
		}

		toCreate := make([]models.Slot, 0, len(candidates))
		for _, c := range candidates {
			if _, ok := preserved[c.Unix()]; ok {
				continue
			}
			toCreate = append(toCreate, models.Slot{Date: c})
		}
		if len(toCreate) > 0 {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&toCreate)
			if res.Error != nil {
				return res.Error
			}
			result.Created = int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return nil, internalErr("override day", err)
	}
	return result, nil
}

// ResetUnbookedSlots bulk-deletes every slot that is not booked, used to
// wipe and regenerate the whole calendar under a new template.
func ResetUnbookedSlots(db *gorm.DB) (int64, error) {
	res := db.Where("is_booked = ?", false).Delete(&models.Slot{})
	if res.Error != nil {
		return 0, internalErr("reset unbooked slots", res.Error)
	}
	return res.RowsAffected, nil
}

// UnblockSlot returns a blocked slot to availability, clearing its note.
// A slot carrying a booking is refused; the invariant should make that
// unreachable, but it is defended anyway.
func UnblockSlot(db *gorm.DB, id string) (*models.Slot, error) {
	slot, err := GetSlotByID(db, id)
	if err != nil {
		return nil, err
	}
	if slot.AppointmentID != nil || slot.IsBooked {
		return nil, fmt.Errorf("%w: slot is linked to an appointment", ErrConflict)
	}
	slot.IsBlocked = false
	slot.BlockedNote = nil
	if err := db.Omit(clause.Associations).Save(slot).Error; err != nil {
		return nil, internalErr("unblock slot", err)
	}
	return slot, nil
}
