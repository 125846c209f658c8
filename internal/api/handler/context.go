package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skilllink/marketplace/internal/core/domain"
)

// Context keys set by middleware.Auth.
const (
	ctxUserID    = "user_id"
	ctxRole      = "role"
	ctxSessionID = "session_id"
	ctxName      = "name"
)

type claims struct {
	userID    string
	role      domain.Role
	sessionID string
	name      string
}

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fails fast before any store call: a token without a user id or session id
// is structurally valid but unusable.
func ctxClaims(c echo.Context) (claims, error) {
	var cl claims
	cl.userID, _ = c.Get(ctxUserID).(string)
	cl.sessionID, _ = c.Get(ctxSessionID).(string)
	cl.name, _ = c.Get(ctxName).(string)
	role, _ := c.Get(ctxRole).(string)
	cl.role = domain.Role(role)

	if cl.userID == "" || cl.sessionID == "" || !cl.role.Valid() {
		return claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return cl, nil
}
