package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/model"
)

// CookieName is the session cookie set at login.
const CookieName = "auth-token"

// Context keys set by SessionAuth.
const (
	ctxUser   = "user"
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// SessionVerifier resolves a session token to its user.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*model.User, error)
}

// SessionAuth reads the auth-token cookie, verifies it against the session
// store and exposes the user as "user" (model.PublicUser), "user_id" and
// "role". The role is re-derived from the stored user on every request.
func SessionAuth(v SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A missing cookie and an empty one are the same case.
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return apperr.ErrUnauthenticated
			}
			u, err := v.VerifySession(c.Request().Context(), cookie.Value)
			if err != nil {
				return err // already an apperr; the error handler maps it
			}
			// The password hash never reaches the context.
			c.Set(ctxUser, u.Public())
			c.Set(ctxUserID, u.ID)
			c.Set(ctxRole, string(u.Role))
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by SessionAuth.
func CurrentUser(c echo.Context) (model.PublicUser, bool) {
	u, ok := c.Get(ctxUser).(model.PublicUser)
	return u, ok
}

// CurrentUserID returns the authenticated user's id or "".
func CurrentUserID(c echo.Context) string {
	s, _ := c.Get(ctxUserID).(string)
	return s
}
