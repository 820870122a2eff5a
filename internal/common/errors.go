// Package common defines shared constants and sentinel errors used across
// the server and the operator CLI. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Credential errors. ErrInvalidCredentials is returned for both an
	// unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("your account is disabled")
	ErrPasswordMismatch   = errors.New("password and confirm password must be same")
	ErrInvalidOtp         = errors.New("invalid OTP")

	// ErrInvalidState reports a user record missing a field the flow needs
	// (email, first name).
	ErrInvalidState = errors.New("invalid state")

	// Token errors. ErrTokenMalformed wraps ErrInvalidToken so callers that
	// only care about validity can match the latter.
	ErrInvalidToken   = errors.New("token is not valid or expired, please try again")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = fmt.Errorf("malformed token: %w", ErrInvalidToken)
)
