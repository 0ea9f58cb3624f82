package middleware // middleware holds the request guards shared by the route table

import (
	"github.com/labstack/echo/v4" // middleware chaining and request context

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/model"
)

// RequireRole lets the request through only when the role stored by
// SessionAuth is one of roles. It must run after SessionAuth. A request
// with no role in its context never passed session verification and gets
// 401; an authenticated user outside the allowed set gets 403. There is no
// implicit hierarchy: list SUPERADMIN explicitly when it should pass.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	// Allowed roles as a set, keyed by the string stored in the context.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// SessionAuth stores the role as a plain string.
			role, ok := c.Get(ctxRole).(string)
			if !ok {
				return apperr.ErrUnauthenticated
			}
			if !allowed[role] {
				return apperr.ErrForbidden
			}
			return next(c)
		}
	}
}

// Admins is the role set for content, settings, properties and requests.
var Admins = []model.Role{model.RoleAdmin, model.RoleSuperAdmin}
