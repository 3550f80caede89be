package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/taskhub-api/internal/api/metrics"
	"github.com/taskhub/taskhub-api/internal/core/domain"
	"github.com/taskhub/taskhub-api/internal/core/ports"
)

type AuthHandler struct {
	auth         ports.AuthService
	tokens       ports.TokenService
	secureCookie bool
}

// NewAuthHandler builds the auth handler. secureCookie controls the Secure
// flag on the session cookie (on in production).
func NewAuthHandler(auth ports.AuthService, tokens ports.TokenService, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, secureCookie: secureCookie}
}

// Register creates a new user account and starts a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	h.setSessionCookie(c, token)

	return c.JSON(http.StatusCreated, authResponse{
		Message:  "User registered successfully",
		UserData: userData{UserID: user.ID, Email: user.Email},
		Token:    token,
	})
}

// Login authenticates a user and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setSessionCookie(c, token)

	return c.JSON(http.StatusOK, authResponse{
		Message:  "User logged in successfully",
		UserData: userData{UserID: user.ID, Email: user.Email},
		Token:    token,
	})
}

// Logout clears the session cookie. It always succeeds, whether or not a
// session existed; a previously issued token stays valid until its natural
// expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "User logged out successfully"})
}

// Verify reports the state of the current session without enforcing it.
// Unlike the auth gate, a missing or invalid token is informational here,
// not an error.
//
// @Summary      Verify the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  verifyResponse
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	cookie, err := c.Cookie(domain.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, verifyResponse{
			Message:       "No active session",
			Authenticated: false,
			TokenPresent:  false,
		})
	}

	payload, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, verifyResponse{
			Message:       "Invalid or expired session",
			Authenticated: false,
			TokenPresent:  true,
		})
	}

	return c.JSON(http.StatusOK, verifyResponse{
		Message:       "Session is valid",
		Authenticated: true,
		TokenPresent:  true,
		UserData:      &userData{UserID: payload.UserID, Email: payload.Email},
	})
}
