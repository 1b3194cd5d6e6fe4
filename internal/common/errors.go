// Package common defines shared constants and sentinel errors used across
// client and server layers of GophVault. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrorNoVault reports that the user exists but has never stored a vault.
	// It wraps ErrorNotFound so callers matching the broader kind still work.
	ErrorNoVault = fmt.Errorf("no vault found for this user: %w", ErrorNotFound)

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorConflict     = errors.New("user with this email already exists")
	ErrorUnavailable  = errors.New("unavailable")

	// Validation errors: malformed call arguments, never retried.
	ErrorInvalidInput = errors.New("invalid input")

	// ErrorDecryptionFailed is the single user-facing outcome of a failed
	// vault open. Wrong password and corrupted storage are not distinguished.
	ErrorDecryptionFailed = errors.New("could not decrypt the vault, the master password may be incorrect or data is corrupted")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
