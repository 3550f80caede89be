package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/taskhub-api/internal/api/metrics"
	"github.com/taskhub/taskhub-api/internal/core/domain"
	"github.com/taskhub/taskhub-api/internal/core/ports"
)

// Auth is the gate in front of every route requiring identity. It extracts
// the session token from the request cookie, verifies it, and injects the
// decoded identity into the echo context. A missing or invalid token blocks
// the request with 401 before the protected handler runs.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(domain.SessionCookieName)
			if err != nil || cookie.Value == "" {
				metrics.GateRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			payload, err := tokens.Verify(cookie.Value)
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("user_id", payload.UserID)
			c.Set("email", payload.Email)

			return next(c)
		}
	}
}
