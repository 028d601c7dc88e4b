// Package common defines shared constants and sentinel errors used across
// client and server layers of taskkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// ErrStorageUnavailable reports a transient backing-store failure
	// (timeout, lost connection). Callers may retry.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Service-level errors.
	ErrValidation      = errors.New("validation error")
	ErrAuth            = errors.New("invalid credentials")
	ErrUnauthenticated = errors.New("unauthenticated")

	// Token errors (bad signature, malformed structure, wrong scope).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
