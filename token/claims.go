// Package token reads informational claims out of backend access tokens. The
// signature is never checked here; the backend is the only verifier.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/suryanavv/ims/internal/utils"
)

// Claims holds the subset of registered claims the console displays.
type Claims struct {
	Sub *string    `json:"sub,omitempty"` // Subject, usually the user id or email
	Exp *time.Time `json:"exp,omitempty"` // Expiration
	Iat *time.Time `json:"iat,omitempty"` // Issued at time
}

// Inspect decodes rawToken without verifying it.
func Inspect(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.New("[token.Inspect] empty token")
	}

	claims := jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(rawToken, &claims); err != nil {
		return nil, errors.Wrap(err, "[token.Inspect] ParseUnverified")
	}

	c := &Claims{}
	if claims.Subject != "" {
		c.Sub = utils.Ptr(claims.Subject)
	}
	if claims.ExpiresAt != nil {
		c.Exp = utils.Ptr(claims.ExpiresAt.Time)
	}
	if claims.IssuedAt != nil {
		c.Iat = utils.Ptr(claims.IssuedAt.Time)
	}
	return c, nil
}

// Expiry returns the exp claim of rawToken. ok is false when the token is not a
// JWT or carries no exp.
func Expiry(rawToken string) (time.Time, bool) {
	c, err := Inspect(rawToken)
	if err != nil || c.Exp == nil {
		return time.Time{}, false
	}
	return *c.Exp, true
}

// Expired reports whether rawToken's exp is at or before now. Tokens without an
// exp are never considered expired.
func Expired(rawToken string, now time.Time) bool {
	exp, ok := Expiry(rawToken)
	if !ok {
		return false
	}
	return !exp.After(now)
}
