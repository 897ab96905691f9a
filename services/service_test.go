package services

import (
	"testing"
	"time"

	"salon_booking_go/models"

	"github.com/stretchr/testify/assert"
)

func TestServiceCRUD(t *testing.T) {
	db := setupSlotTestDB(t)

	t.Run("create rejects invalid category", func(t *testing.T) {
		err := CreateService(db, &models.Service{Category: "MASSAGE", DurationMin: 60})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("create rejects non-positive duration", func(t *testing.T) {
		err := CreateService(db, &models.Service{Category: models.ServiceCategoryCoiffure, DurationMin: 0})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("create and fetch", func(t *testing.T) {
		service := &models.Service{Category: models.ServiceCategoryCoiffure, DurationMin: 60}
		assert.NoError(t, CreateService(db, service))
		assert.NotEmpty(t, service.ID)

		got, err := GetServiceByID(db, service.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.ServiceCategoryCoiffure, got.Category)
	})

	t.Run("update validates duration", func(t *testing.T) {
		service := &models.Service{Category: models.ServiceCategoryCils, DurationMin: 60}
		assert.NoError(t, CreateService(db, service))

		bad := -30
		_, err := UpdateService(db, service.ID, ServiceUpdate{DurationMin: &bad})
		assert.ErrorIs(t, err, ErrInvalidRequest)

		good := 90
		updated, err := UpdateService(db, service.ID, ServiceUpdate{DurationMin: &good})
		assert.NoError(t, err)
		assert.Equal(t, 90, updated.DurationMin)
	})

	t.Run("delete refuses while appointments reference it", func(t *testing.T) {
		service := &models.Service{Category: models.ServiceCategoryPiercing, DurationMin: 60}
		assert.NoError(t, CreateService(db, service))

		slot := models.Slot{Date: testMonday.Add(9 * time.Hour)}
		assert.NoError(t, db.Create(&slot).Error)
		_, err := BookAppointment(db, DefaultTemplate(), bookingReq(service.ID, slot.ID))
		assert.NoError(t, err)

		err = DeleteService(db, service.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("delete unused service", func(t *testing.T) {
		service := &models.Service{Category: models.ServiceCategoryTattouage, DurationMin: 120}
		assert.NoError(t, CreateService(db, service))

		assert.NoError(t, DeleteService(db, service.ID))
		_, err := GetServiceByID(db, service.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSeedDefaultServices(t *testing.T) {
	db := setupSlotTestDB(t)

	assert.NoError(t, SeedDefaultServices(db))
	var count int64
	assert.NoError(t, db.Model(&models.Service{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)

	// Seeding again is a no-op
	assert.NoError(t, SeedDefaultServices(db))
	assert.NoError(t, db.Model(&models.Service{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
