// Package common defines sentinel errors shared by the repository, service
// and transport layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration errors.
	ErrDuplicateUsername = errors.New("duplicate username")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password so that callers cannot tell the two apart.
	ErrInvalidCredentials = fmt.Errorf("invalid username/password: %w", ErrorUnauthorized)

	// Media errors. The upstream cause is logged, never returned.
	ErrUploadFailed = errors.New("failed to upload to bucket")
)
