package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/observability/metrics"
)

// Observe logs one line per request and records the HTTP metrics. Errors
// are passed to the echo error handler here so the logged status is the one
// the client receives. It should run after echo's RequestID middleware.
func Observe(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)

			req := c.Request()
			status := c.Response().Status
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			metrics.HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDurationSeconds.WithLabelValues(req.Method, path).Observe(elapsed.Seconds())

			entry := log.WithFields(logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"route":      path,
				"status":     status,
				"latency_ms": elapsed.Milliseconds(),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"ip":         c.RealIP(),
			})
			if uid := CurrentUserID(c); uid != "" {
				entry = entry.WithField("user_id", uid)
			}
			switch {
			case status >= 500:
				entry.Error("request")
			case status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		}
	}
}
