package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/skilllink/marketplace/internal/core/domain"
)

// RBAC admits the request only when the role Auth put on the context is one
// of roles. It must run after Auth.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !slices.Contains(roles, domain.Role(role)) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "forbidden: requires role " + joinRoles(roles),
				})
			}
			return next(c)
		}
	}
}

func joinRoles(roles []domain.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += " or "
		}
		out += string(r)
	}
	return out
}
