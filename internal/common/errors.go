// Package common defines shared constants and sentinel errors used across
// client and server layers of AuthKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Signup errors.
	ErrDuplicateEmail = errors.New("email already in use")
	ErrValidation     = errors.New("validation error")

	// Login errors. Unknown email and wrong password share one value.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Refresh errors.
	ErrMissingRefreshToken = errors.New("no refresh token found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// Guard errors.
	ErrUnauthenticated = errors.New("unauthenticated")

	// Token verification errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
