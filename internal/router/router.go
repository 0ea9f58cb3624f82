// Package router registers every HTTP route and its middleware chain.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luxylyfe/portal/internal/handler"
	"github.com/luxylyfe/portal/internal/middleware"
	"github.com/luxylyfe/portal/internal/model"
)

// Handlers bundles everything the routes need.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserAdminHandler
	Stats      *handler.StatsHandler
	Requests   *handler.RequestHandler
	Content    *handler.ContentHandler
	Settings   *handler.SettingsHandler
	Properties *handler.PropertyHandler

	// Session resolves the auth-token cookie; usually the AuthService.
	Session middleware.SessionVerifier
	// RateLimit wraps the public write endpoints. Nil means unlimited.
	RateLimit echo.MiddlewareFunc
}

// RegisterRoutes registers the unauthenticated probes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAPI registers every /api route.
func RegisterAPI(e *echo.Echo, h Handlers) {
	limited := h.RateLimit
	if limited == nil {
		limited = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	session := middleware.SessionAuth(h.Session)
	admins := middleware.RequireRole(middleware.Admins...)
	superadmin := middleware.RequireRole(model.RoleSuperAdmin)

	api := e.Group("/api")

	api.POST("/auth/login", h.Auth.Login, limited)
	api.POST("/auth/signup", h.Auth.Signup, limited)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me, session)

	// Public reads and the contact form.
	api.GET("/content", h.Content.ListPublic)
	api.GET("/settings", h.Settings.ListPublic)
	api.GET("/properties", h.Properties.List)
	api.GET("/properties/:id", h.Properties.Get)
	api.POST("/requests", h.Requests.Create, limited)

	// Staff management of site data. Guards are attached per route so
	// unknown /api paths still answer 404.
	staff := []echo.MiddlewareFunc{session, admins}
	api.GET("/requests", h.Requests.List, staff...)
	api.GET("/requests/:id", h.Requests.Get, staff...)
	api.PATCH("/requests/:id", h.Requests.Update, staff...)
	api.DELETE("/requests/:id", h.Requests.Delete, staff...)

	api.POST("/content", h.Content.Create, staff...)
	api.PUT("/content/:id", h.Content.Update, staff...)
	api.DELETE("/content/:id", h.Content.Delete, staff...)

	api.POST("/settings", h.Settings.Create, staff...)
	api.PUT("/settings/:key", h.Settings.Update, staff...)
	api.DELETE("/settings/:key", h.Settings.Delete, staff...)

	api.POST("/properties", h.Properties.Create, staff...)
	api.PUT("/properties/:id", h.Properties.Update, staff...)
	api.DELETE("/properties/:id", h.Properties.Delete, staff...)

	api.GET("/admin/stats", h.Stats.Stats, staff...)
	api.GET("/admin/content", h.Content.ListAll, staff...)
	api.GET("/admin/settings", h.Settings.ListAll, staff...)

	// Account management is superadmin only.
	root := []echo.MiddlewareFunc{session, superadmin}
	api.GET("/admin/users", h.Users.List, root...)
	api.POST("/admin/users", h.Users.Create, root...)
	api.DELETE("/admin/users/:id", h.Users.Delete, root...)
	api.POST("/admin/users/:id/reset-password", h.Users.ResetPassword, root...)
}
