package handlers

import (
	"net/http"

	"salon_booking_go/db"
	"salon_booking_go/services"

	"github.com/labstack/echo/v4"
)

// CreateAppointmentHandler is the public booking entry point: it books
// a contiguous slot run for the chosen service and dispatches the
// confirmation emails without awaiting them.
func CreateAppointmentHandler(c echo.Context) error {
	var req struct {
		Lastname    string  `json:"lastname"`
		Firstname   string  `json:"firstname"`
		Phone       string  `json:"phone"`
		Email       *string `json:"email"`
		Note        *string `json:"note"`
		ServiceID   string  `json:"service_id"`
		StartSlotID string  `json:"start_slot_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Lastname == "" || req.Firstname == "" || req.Phone == "" || req.ServiceID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Lastname, firstname, phone and service are required")
	}
	if req.StartSlotID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start_slot_id is required")
	}

	appointment, err := services.BookAppointment(db.DB, services.DefaultTemplate(), services.BookingRequest{
		Lastname:    req.Lastname,
		Firstname:   req.Firstname,
		Phone:       req.Phone,
		Email:       req.Email,
		Note:        req.Note,
		ServiceID:   req.ServiceID,
		StartSlotID: req.StartSlotID,
	})
	if err != nil {
		return httpError(err)
	}

	// Fire-and-forget notifications; a delivery failure never fails the
	// booking that already committed.
	if cfg := getConfig(c); cfg != nil {
		clientName := appointment.ClientName()
		serviceName := appointment.Service.Category
		startTime := appointment.StartTime()

		if appointment.Email != nil && *appointment.Email != "" {
			email := services.BuildAppointmentConfirmationEmail(
				*appointment.Email, clientName, serviceName, startTime, appointment.ID)
			services.SendEmailAsync(cfg, email)
		}
		if cfg.AdminEmail != "" {
			email := services.BuildNewBookingNotificationEmail(
				cfg.AdminEmail, clientName, appointment.Phone, appointment.Email,
				serviceName, startTime, appointment.ID)
			services.SendEmailAsync(cfg, email)
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":     true,
		"appointment": appointment,
	})
}

// GetAppointmentsHandler lists appointments for the admin dashboard
func GetAppointmentsHandler(c echo.Context) error {
	filter := services.AppointmentFilter{}
	if raw := c.QueryParam("fromDate"); raw != "" {
		fromDate, err := parseDateParam(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid fromDate format")
		}
		filter.FromDate = &fromDate
	}
	if raw := c.QueryParam("serviceId"); raw != "" {
		filter.ServiceID = &raw
	}

	appointments, err := services.ListAppointments(db.DB, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"appointments": appointments,
	})
}

// GetAppointmentHandler returns a single appointment with its slots
func GetAppointmentHandler(c echo.Context) error {
	appointment, err := services.GetAppointmentByID(db.DB, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"appointment": appointment,
	})
}

// UpdateAppointmentHandler updates an appointment's client fields and service
func UpdateAppointmentHandler(c echo.Context) error {
	var req struct {
		Lastname  *string `json:"lastname"`
		Firstname *string `json:"firstname"`
		Phone     *string `json:"phone"`
		Email     *string `json:"email"`
		Note      *string `json:"note"`
		ServiceID *string `json:"service_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	appointment, err := services.UpdateAppointment(db.DB, c.Param("id"), services.AppointmentUpdate{
		Lastname:  req.Lastname,
		Firstname: req.Firstname,
		Phone:     req.Phone,
		Email:     req.Email,
		Note:      req.Note,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"appointment": appointment,
	})
}

// DeleteAppointmentHandler deletes an appointment and releases its slots
func DeleteAppointmentHandler(c echo.Context) error {
	if err := services.DeleteAppointment(db.DB, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Appointment deleted, slots released",
	})
}

// ExportAppointmentsHandler streams the appointment book as an .xlsx file
func ExportAppointmentsHandler(c echo.Context) error {
	filter := services.AppointmentFilter{}
	if raw := c.QueryParam("fromDate"); raw != "" {
		fromDate, err := parseDateParam(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid fromDate format")
		}
		filter.FromDate = &fromDate
	}

	f, err := services.ExportAppointmentsXLSX(db.DB, filter)
	if err != nil {
		return httpError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="rendez-vous.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
