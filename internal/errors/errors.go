package errors

import (
	"errors"
	"fmt"
)

// Common error types for the publisher
var (
	// Session errors
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUnauthenticated  = errors.New("authentication required")

	// OAuth login errors
	ErrInvalidState   = errors.New("invalid oauth state")
	ErrMissingCode    = errors.New("missing authorization code")
	ErrProfileMissing = errors.New("profile missing from provider response")

	// Hosting protocol errors
	ErrDigestMismatch = errors.New("digest mismatch")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
