package handlers

import (
	"errors"
	"net/http"

	"salon_booking_go/config"
	"salon_booking_go/services"

	"github.com/labstack/echo/v4"
)

// getConfig retrieves the app config injected by the server middleware
func getConfig(c echo.Context) *config.Config {
	cfg, _ := c.Get("config").(*config.Config)
	return cfg
}

// httpError maps a classified service error onto an echo HTTP error.
// Unclassified errors become a generic 500; details stay in the logs.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidRequest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
