package services

import (
	"testing"
	"time"

	"salon_booking_go/models"

	"github.com/stretchr/testify/assert"
)

func TestExportAppointmentsXLSX(t *testing.T) {
	db := setupSlotTestDB(t)
	service := createTestService(t, db, 60)

	slot := models.Slot{Date: testMonday.Add(9 * time.Hour)}
	assert.NoError(t, db.Create(&slot).Error)
	appointment, err := BookAppointment(db, DefaultTemplate(), bookingReq(service.ID, slot.ID))
	assert.NoError(t, err)

	f, err := ExportAppointmentsXLSX(db, AppointmentFilter{})
	assert.NoError(t, err)

	sheet := "Rendez-vous"

	header, err := f.GetCellValue(sheet, "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Référence", header)

	ref, err := f.GetCellValue(sheet, "A2")
	assert.NoError(t, err)
	assert.Equal(t, appointment.ID, ref)

	lastname, err := f.GetCellValue(sheet, "B2")
	assert.NoError(t, err)
	assert.Equal(t, "Durand", lastname)

	category, err := f.GetCellValue(sheet, "F2")
	assert.NoError(t, err)
	assert.Equal(t, models.ServiceCategoryCoiffure, category)

	start, err := f.GetCellValue(sheet, "H2")
	assert.NoError(t, err)
	assert.Equal(t, "2027-01-04 09:00", start)
}
