package service

import (
	"errors"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/repository"
)

// conflictOrInternal maps a repository error to the client-facing kind.
func conflictOrInternal(err error, conflictMsg string) error {
	if errors.Is(err, repository.ErrConflict) {
		return apperr.Conflict(conflictMsg)
	}
	return notFoundOrInternal(err, "Not found")
}

func notFoundOrInternal(err error, notFoundMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Internal(apperr.MsgInternal, err)
}
