// Package app assembles the HTTP server from a store and configuration.
package app

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/config"
	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/handler"
	"github.com/luxylyfe/portal/internal/middleware"
	"github.com/luxylyfe/portal/internal/repository"
	"github.com/luxylyfe/portal/internal/router"
	"github.com/luxylyfe/portal/internal/service"
	"github.com/luxylyfe/portal/internal/utils"
)

// Deps are the process-level resources the server is built from.
type Deps struct {
	Config    config.Config
	RateLimit config.RateLimitConfig
	Store     docstore.Store
	// Redis backs the rate limiter; nil disables it.
	Redis *redis.Client
	// Publisher receives request.filed events; nil drops them.
	Publisher service.EventPublisher
	Log       *logrus.Logger
}

// App is the assembled server.
type App struct {
	Echo  *echo.Echo
	Repos *repository.Repositories
	Auth  *service.AuthService
}

// New wires repositories, services, handlers and middleware into an echo
// instance.
func New(d Deps) (*App, error) {
	signer, err := utils.NewSigner(d.Config.JWTSecret)
	if err != nil {
		return nil, err
	}
	log := d.Log
	repos := repository.New(d.Store)

	auth := service.NewAuthService(repos, signer, d.Config.BcryptCost, log.WithField("component", "auth"))
	users := service.NewUserService(repos.Users, d.Config.BcryptCost, log.WithField("component", "users"))
	requests := service.NewRequestService(repos.Requests, d.Publisher, log.WithField("component", "requests"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Binder = handler.StrictBinder{}
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(echomw.RequestID())
	e.Use(middleware.Observe(log))
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		Auth:       handler.NewAuthHandler(auth, d.Config.Production()),
		Users:      handler.NewUserAdminHandler(users),
		Stats:      handler.NewStatsHandler(repos),
		Requests:   handler.NewRequestHandler(requests),
		Content:    handler.NewContentHandler(repos.Content),
		Settings:   handler.NewSettingsHandler(repos.Settings),
		Properties: handler.NewPropertyHandler(repos.Properties),
		Session:    auth,
		RateLimit:  middleware.NewTokenBucket(d.RateLimit, d.Redis, log.WithField("component", "ratelimit")),
	})

	return &App{Echo: e, Repos: repos, Auth: auth}, nil
}
