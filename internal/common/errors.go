// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors for incoming requests.
	ErrorIncorrectMetadata = errors.New("incorrect metadata")
	ErrorEmptyManifest     = errors.New("empty manifest")
	ErrorUnknownCategory   = errors.New("unknown category")
	ErrorFileTooLarge      = errors.New("file too large")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
