// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorInvalidArgument = errors.New("invalid argument")

	// Economy errors.
	ErrorUnknownGame       = errors.New("unknown game")
	ErrorUnknownTag        = errors.New("unknown tag")
	ErrorAlreadyOwned      = errors.New("already owned")
	ErrorInsufficientFunds = errors.New("insufficient coins")

	// Session errors (invalid, malformed or expired cookie token).
	ErrInvalidToken   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired")
)
