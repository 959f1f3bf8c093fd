package auth

import (
	"errors"
	"fmt"
)

// Displayable fallback messages.
const (
	LoginFailedMessage      = "Login failed"
	NotAuthenticatedMessage = "Not authenticated. Please login again."
	SessionExpiredMessage   = "Session expired. Please login again."
	RequestFailedMessage    = "Request failed"
	SSOFailedMessage        = "Failed to launch service"
)

// AuthenticationError is the human-facing failure of login, federated login
// initiation, SSO launch and of requests attempted without any credential.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *AuthenticationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SessionExpiredError means a request was still unauthorized after the single
// refresh attempt. The caller should offer a re-login.
type SessionExpiredError struct {
	Message string
}

func (e *SessionExpiredError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// RequestFailedError is a non-success backend response, or a transport failure
// when StatusCode is 0.
type RequestFailedError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *RequestFailedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newAuthError(message string, err error) *AuthenticationError {
	return &AuthenticationError{Message: message, Err: err}
}

// IsSessionExpired reports whether err is, or wraps, a *SessionExpiredError.
func IsSessionExpired(err error) bool {
	var target *SessionExpiredError
	return errors.As(err, &target)
}

// IsAuthentication reports whether err is, or wraps, a *AuthenticationError.
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// DisplayMessage returns the human-readable message of any error in this
// taxonomy, or fallback for anything else.
func DisplayMessage(err error, fallback string) string {
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var expiredErr *SessionExpiredError
	if errors.As(err, &expiredErr) {
		return expiredErr.Message
	}
	var reqErr *RequestFailedError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return fallback
}
