package services

import (
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportAppointmentsXLSX builds an Excel workbook with one row per
// appointment for the admin dashboard download.
func ExportAppointmentsXLSX(db *gorm.DB, filter AppointmentFilter) (*excelize.File, error) {
	appointments, err := ListAppointments(db, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Rendez-vous"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Référence", "Nom", "Prénom", "Téléphone", "Email", "Service", "Durée (min)", "Début", "Créneaux", "Note", "Créé le"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, apt := range appointments {
		email := ""
		if apt.Email != nil {
			email = *apt.Email
		}
		note := ""
		if apt.Note != nil {
			note = *apt.Note
		}
		start := ""
		if t := apt.StartTime(); !t.IsZero() {
			start = t.Format("2006-01-02 15:04")
		}
		values := []interface{}{
			apt.ID,
			apt.Lastname,
			apt.Firstname,
			apt.Phone,
			email,
			apt.Service.Category,
			apt.Service.DurationMin,
			start,
			len(apt.Slots),
			note,
			apt.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}
