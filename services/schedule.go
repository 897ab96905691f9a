package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSlotDurationMin is the base slot granularity of the salon calendar.
const DefaultSlotDurationMin = 60

// TimeBlock is a (start, end) pair of wall-clock times with minute
// resolution, in "HH:MM" form. Immutable value; part of a schedule template.
type TimeBlock struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ScheduleTemplate describes the salon's business hours: ordered time
// blocks, the base slot duration and the weekdays the salon is open.
// Global, rarely-changing configuration; supplied at generation time
// rather than persisted per slot.
type ScheduleTemplate struct {
	Blocks          []TimeBlock
	SlotDurationMin int
	ActiveWeekdays  []time.Weekday
}

// DefaultTemplate returns the salon's standard hours:
// 09:00-12:00 and 14:00-18:00, Monday through Saturday, 60-minute slots.
func DefaultTemplate() ScheduleTemplate {
	return ScheduleTemplate{
		Blocks: []TimeBlock{
			{Start: "09:00", End: "12:00"},
			{Start: "14:00", End: "18:00"},
		},
		SlotDurationMin: DefaultSlotDurationMin,
		ActiveWeekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	}
}

// IsActiveWeekday reports whether the salon is open on the given day's weekday.
func (t ScheduleTemplate) IsActiveWeekday(day time.Time) bool {
	for _, wd := range t.ActiveWeekdays {
		if day.Weekday() == wd {
			return true
		}
	}
	return false
}

// SlotDuration returns the base slot duration as a time.Duration.
func (t ScheduleTemplate) SlotDuration() time.Duration {
	return time.Duration(t.SlotDurationMin) * time.Minute
}

// ParseHM combines a calendar day with an "HH:MM" wall-clock time.
func ParseHM(day time.Time, hm string) (time.Time, error) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: invalid time %q", ErrInvalidRequest, hm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("%w: invalid hour in %q", ErrInvalidRequest, hm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: invalid minute in %q", ErrInvalidRequest, hm)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

// EnumerateDaySlots returns the candidate slot timestamps for one
// calendar day, one every SlotDurationMin minutes per time block while
// strictly before the block end, concatenated in block order. A trailing
// partial period is dropped: no slot starts where it would overrun the
// block. Weekday filtering is the caller's job.
func EnumerateDaySlots(day time.Time, tpl ScheduleTemplate) ([]time.Time, error) {
	var slots []time.Time
	for _, block := range tpl.Blocks {
		start, err := ParseHM(day, block.Start)
		if err != nil {
			return nil, err
		}
		end, err := ParseHM(day, block.End)
		if err != nil {
			return nil, err
		}
		for d := start; d.Add(tpl.SlotDuration()).Before(end) || d.Add(tpl.SlotDuration()).Equal(end); d = d.Add(tpl.SlotDuration()) {
			slots = append(slots, d)
		}
	}
	return slots, nil
}
