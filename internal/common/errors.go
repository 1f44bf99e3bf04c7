// Package common defines shared constants and sentinel errors used across
// client and server layers of eventboard. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorValidation   = errors.New("validation error")
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token errors. ErrTokenExpired is the only kind reported as 403,
	// the rest are 401.
	ErrTokenMissing          = errors.New("missing token")
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired          = errors.New("token expired")
)
