package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skilllink/marketplace/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusRule maps a domain sentinel to a status code. An empty message means
// the wrapped error text is safe to show.
type statusRule struct {
	target  error
	code    int
	message string
}

var statusRules = []statusRule{
	{domain.ErrJobNotFound, http.StatusNotFound, "job not found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, ""},
	{domain.ErrInvalidInput, http.StatusBadRequest, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrNotAuthenticated, http.StatusUnauthorized, "not authenticated"},
	{domain.ErrSessionNotFound, http.StatusUnauthorized, "not authenticated"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
}

// NewHTTPErrorHandler renders every handler error as {"error": "..."}.
// Errors matching no rule are logged and answered with a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg, known := statusFor(err)
		if !known {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("route", c.Path()).
				Msg("unhandled error")
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func statusFor(err error) (int, string, bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message), true
	}
	for _, r := range statusRules {
		if !errors.Is(err, r.target) {
			continue
		}
		if r.message == "" {
			return r.code, err.Error(), true
		}
		return r.code, r.message, true
	}
	return http.StatusInternalServerError, "internal server error", false
}
