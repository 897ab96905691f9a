package handlers

import (
	"net/http"

	"salon_booking_go/db"
	"salon_booking_go/models"
	"salon_booking_go/services"

	"github.com/labstack/echo/v4"
)

// GetServicesHandler lists the salon's bookable services (public)
func GetServicesHandler(c echo.Context) error {
	list, err := services.ListServices(db.DB)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"services": list,
	})
}

// GetServiceHandler returns a single salon service (public)
func GetServiceHandler(c echo.Context) error {
	service, err := services.GetServiceByID(db.DB, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"service": service,
	})
}

// CreateServiceHandler adds a new salon service
func CreateServiceHandler(c echo.Context) error {
	var req struct {
		Category    string   `json:"category"`
		DurationMin int      `json:"duration_min"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	service := &models.Service{
		Category:    req.Category,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Description: req.Description,
	}
	if err := services.CreateService(db.DB, service); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"service": service,
	})
}

// UpdateServiceHandler updates a salon service
func UpdateServiceHandler(c echo.Context) error {
	var req struct {
		Category    *string  `json:"category"`
		DurationMin *int     `json:"duration_min"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	service, err := services.UpdateService(db.DB, c.Param("id"), services.ServiceUpdate{
		Category:    req.Category,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"service": service,
	})
}

// DeleteServiceHandler removes a salon service without appointments
func DeleteServiceHandler(c echo.Context) error {
	if err := services.DeleteService(db.DB, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Service deleted",
	})
}
