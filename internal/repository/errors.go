// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios without inspecting driver errors.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Update and Delete when the target document
// does not exist. FindUnique never returns it; absence there is (nil, nil).
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a create or update would duplicate a unique
// key. Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

var (
	ErrEmailExists      = fmt.Errorf("email already exists: %w", ErrConflict)
	ErrPropertyIDExists = fmt.Errorf("property id already exists: %w", ErrConflict)
	ErrSettingKeyExists = fmt.Errorf("setting key already exists: %w", ErrConflict)
)

// errNoUniqueKey guards FindUnique against an empty where clause, which
// would otherwise return an arbitrary document.
var errNoUniqueKey = errors.New("repository: findUnique needs an id or unique field")
