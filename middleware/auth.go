package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"salon_booking_go/config"

	"github.com/labstack/echo/v4"
)

// RequireAdmin guards the admin API surface. The caller is authorized
// when the Authorization header carries the configured bearer token.
// How that token is provisioned is outside this service's concern.
func RequireAdmin(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.AdminAPIToken == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Admin access is not configured")
			}

			header := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing bearer token")
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.AdminAPIToken)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			return next(c)
		}
	}
}
