package errors

import (
	"errors"
	"fmt"
)

// Common error types for the IMS console
var (
	// Store errors
	ErrNotFound       = errors.New("not found")
	ErrCorruptProfile = errors.New("corrupt profile data")

	// Configuration errors
	ErrInvalidBaseURL    = errors.New("invalid API base URL")
	ErrUnsupportedStore  = errors.New("unsupported profile store")
	ErrMissingRedisURL   = errors.New("redis URL is required for the redis profile store")
	ErrInvalidProvider   = errors.New("invalid federated login provider")
	ErrMissingCredential = errors.New("email and password are required")

	// Validation errors
	ErrMissingField    = errors.New("required field missing")
	ErrInvalidSchedule = errors.New("invalid clinic schedule")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidBody     = errors.New("invalid request body")
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
