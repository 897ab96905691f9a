package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"salon_booking_go/config"
	"salon_booking_go/db"
	"salon_booking_go/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Service{},
		&models.Appointment{},
		&models.Slot{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

// Monday 2027-01-04, safely in the future for past-date checks.
var testMonday = time.Date(2027, 1, 4, 0, 0, 0, 0, time.UTC)

func createTestSlot(t *testing.T, testDB *gorm.DB, date time.Time) *models.Slot {
	slot := &models.Slot{Date: date}
	assert.NoError(t, testDB.Create(slot).Error)
	return slot
}

func createTestService(t *testing.T, testDB *gorm.DB, durationMin int) *models.Service {
	service := &models.Service{Category: models.ServiceCategoryCoiffure, DurationMin: durationMin}
	assert.NoError(t, testDB.Create(service).Error)
	return service
}

func createTestBookedSlot(t *testing.T, testDB *gorm.DB, date time.Time) *models.Slot {
	service := createTestService(t, testDB, 60)
	apt := &models.Appointment{
		Lastname:  "Durand",
		Firstname: "Claire",
		Phone:     "0600000000",
		ServiceID: service.ID,
	}
	assert.NoError(t, testDB.Create(apt).Error)

	slot := &models.Slot{Date: date, IsBooked: true, AppointmentID: &apt.ID}
	assert.NoError(t, testDB.Create(slot).Error)
	return slot
}

func httpErrorCode(t *testing.T, err error) int {
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok, "expected *echo.HTTPError, got %T: %v", err, err)
	return he.Code
}
