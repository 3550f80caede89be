package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the authenticated identity injected by the Auth
// middleware. A missing user id means the middleware did not run; fail fast
// with 401 before any service call.
func ctxIdentity(c echo.Context) (userID string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims")
	}
	return userID, nil
}
