package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseHM(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid time", func(t *testing.T) {
		got, err := ParseHM(day, "09:30")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC), got)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseHM(day, "nine")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("out of range hour", func(t *testing.T) {
		_, err := ParseHM(day, "25:00")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestEnumerateDaySlots(t *testing.T) {
	// Monday June 1st 2026
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("default template", func(t *testing.T) {
		slots, err := EnumerateDaySlots(day, DefaultTemplate())
		assert.NoError(t, err)
		// 09:00-12:00 -> 09,10,11 and 14:00-18:00 -> 14,15,16,17
		assert.Len(t, slots, 7)
		assert.Equal(t, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), slots[0])
		assert.Equal(t, time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC), slots[2])
		assert.Equal(t, time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC), slots[3])
		assert.Equal(t, time.Date(2026, 6, 1, 17, 0, 0, 0, time.UTC), slots[6])
	})

	t.Run("slots are ordered", func(t *testing.T) {
		slots, err := EnumerateDaySlots(day, DefaultTemplate())
		assert.NoError(t, err)
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].Before(slots[i]))
		}
	})

	t.Run("trailing partial period is dropped", func(t *testing.T) {
		tpl := ScheduleTemplate{
			Blocks:          []TimeBlock{{Start: "09:00", End: "10:30"}},
			SlotDurationMin: 60,
		}
		slots, err := EnumerateDaySlots(day, tpl)
		assert.NoError(t, err)
		assert.Len(t, slots, 1)
		assert.Equal(t, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), slots[0])
	})

	t.Run("block shorter than a slot yields nothing", func(t *testing.T) {
		tpl := ScheduleTemplate{
			Blocks:          []TimeBlock{{Start: "09:00", End: "09:30"}},
			SlotDurationMin: 60,
		}
		slots, err := EnumerateDaySlots(day, tpl)
		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid block time", func(t *testing.T) {
		tpl := ScheduleTemplate{
			Blocks:          []TimeBlock{{Start: "bad", End: "10:00"}},
			SlotDurationMin: 60,
		}
		_, err := EnumerateDaySlots(day, tpl)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestIsActiveWeekday(t *testing.T) {
	tpl := DefaultTemplate()

	monday := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)

	assert.True(t, tpl.IsActiveWeekday(monday))
	assert.True(t, tpl.IsActiveWeekday(saturday))
	assert.False(t, tpl.IsActiveWeekday(sunday))
}
