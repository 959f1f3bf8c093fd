package server

import (
	"context"
	"net/http"

	"github.com/suryanavv/ims/auth"
	"github.com/suryanavv/ims/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyProfile stores the signed-in user's profile
const ContextKeyProfile ContextKey = "profile"

// RequireSession rejects requests unless an access token is held or can be
// obtained with one refresh. The profile is put on the request context.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap := s.session.Snapshot(r.Context())
		if !snap.Authenticated() && s.session.RefreshToken(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, codeNotAuthenticated, auth.NotAuthenticatedMessage)
			return
		}

		profile := snap.User
		if profile == nil {
			profile = s.session.User(r.Context())
		}
		ctx := context.WithValue(r.Context(), ContextKeyProfile, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only profiles carrying one of roles. The role comes from
// the stored profile, never from the separately cached role string.
func (s *Server) RequireRole(roles ...users.RoleType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := ProfileFromContext(r.Context())
			if profile == nil {
				profile = s.session.User(r.Context())
			}
			if profile == nil || !profile.HasRole(roles...) {
				writeError(w, http.StatusForbidden, codeForbidden, "You do not have access to this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ProfileFromContext returns the profile RequireSession stored, or nil.
func ProfileFromContext(ctx context.Context) *users.Profile {
	profile, _ := ctx.Value(ContextKeyProfile).(*users.Profile)
	return profile
}
