package db

import (
	"path/filepath"
	"testing"

	"salon_booking_go/models"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "salon.db")

	err := Initialize(dbPath, "development")
	assert.NoError(t, err)
	assert.NotNil(t, DB)
	defer func() {
		assert.NoError(t, Close())
		DB = nil
	}()

	// The DSN enables WAL journaling
	var journalMode string
	assert.NoError(t, DB.Raw("PRAGMA journal_mode").Scan(&journalMode).Error)
	assert.Equal(t, "wal", journalMode)

	err = AutoMigrate(&models.Service{}, &models.Appointment{}, &models.Slot{})
	assert.NoError(t, err)
	assert.True(t, DB.Migrator().HasTable(&models.Slot{}))
}

func TestAutoMigrateRequiresInitialize(t *testing.T) {
	DB = nil
	err := AutoMigrate(&models.Slot{})
	assert.Error(t, err)
}
