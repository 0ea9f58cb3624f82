package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/repository"
)

// ErrorHandler writes every error as {"error": message}. Application errors
// carry their own status; echo's routing errors keep theirs. Internal
// causes are logged and never sent.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := http.StatusInternalServerError, apperr.MsgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			msg = http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok && m != "" {
				msg = m
			}
			if status >= http.StatusInternalServerError {
				log.WithError(err).Error("http error")
			}
		} else {
			ae := apperr.As(err)
			status, msg = ae.Kind.Status(), ae.Message
			if ae.Kind == apperr.KindInternal {
				log.WithError(ae).WithFields(logrus.Fields{
					"method":     c.Request().Method,
					"path":       c.Request().URL.Path,
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}).Error("internal error")
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, echo.Map{"error": msg})
	}
}

// repoErr translates a repository error for handlers that talk to
// repositories directly.
func repoErr(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFoundMsg)
	case errors.Is(err, repository.ErrConflict):
		return apperr.Conflict(conflictMsg)
	}
	return apperr.Internal(apperr.MsgInternal, err)
}
