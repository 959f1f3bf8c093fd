package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/apimodel"
	"github.com/suryanavv/ims/auth"
	ierrors "github.com/suryanavv/ims/internal/errors"
	"github.com/suryanavv/ims/users"
)

// SessionResponse describes the console's current session.
type SessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *users.Profile `json:"user,omitempty"`
	Role          string         `json:"role,omitempty"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
	Expired       bool           `json:"expired,omitempty"` // token held but past its exp claim
}

func (s *Server) sessionResponse(r *http.Request) SessionResponse {
	snap := s.session.Snapshot(r.Context())
	resp := SessionResponse{
		Authenticated: snap.Authenticated(),
		User:          snap.User,
		Role:          snap.Role,
	}
	if exp, ok := s.session.TokenExpiry(r.Context()); ok && resp.Authenticated {
		resp.ExpiresAt = &exp
		resp.Expired = s.session.TokenExpired(r.Context())
	}
	return resp
}

func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.sessionResponse(r))
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodel.LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeFailure(w, err)
			return
		}
		if req.Email == "" || req.Password == "" {
			writeFailure(w, ierrors.ErrMissingCredential)
			return
		}

		if _, err := s.session.Login(r.Context(), req.Email, req.Password); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.sessionResponse(r))
	}
}

// FederatedLoginHandler returns the provider's authorization URL for the UI to
// navigate to.
func (s *Server) FederatedLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, err := auth.ParseProvider(chi.URLParam(r, "provider"))
		if err != nil {
			writeFailure(w, err)
			return
		}
		authURL, err := s.session.InitiateFederatedLogin(r.Context(), provider)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, apimodel.AuthURLResponse{AuthURL: authURL})
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.session.RefreshToken(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, codeSessionExpired, auth.SessionExpiredMessage)
			return
		}
		writeJSON(w, http.StatusOK, s.sessionResponse(r))
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.session.Logout(r.Context())
		writeJSON(w, http.StatusOK, apimodel.MessageResponse{Message: "Logged out"})
	}
}

// HealthHandler runs the registered checks. Any failure makes the console
// report itself degraded with a 503.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failures := map[string]string{}
		for name, check := range s.checks {
			if err := check(r.Context()); err != nil {
				log.Warn().Err(err).Str("check", name).Msg("health check failed")
				failures[name] = err.Error()
			}
		}
		if len(failures) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "degraded", "checks": failures})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
