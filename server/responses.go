package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/auth"
	ierrors "github.com/suryanavv/ims/internal/errors"
)

const maxJSONBody = 1 << 20

// Error codes
const (
	codeNotAuthenticated = "not_authenticated"
	codeSessionExpired   = "session_expired"
	codeRequestFailed    = "request_failed"
	codeValidation       = "validation_error"
	codeForbidden        = "forbidden"
	codeNotFound         = "not_found"
	codeInternal         = "internal_error"
)

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIError{Code: code, Message: message})
}

// writeFailure maps an error from the session or domain layer to a response.
// Backend 4xx statuses pass through; anything else from the backend is a 502.
func writeFailure(w http.ResponseWriter, err error) {
	var authErr *auth.AuthenticationError
	var expiredErr *auth.SessionExpiredError
	var reqErr *auth.RequestFailedError

	switch {
	case ierrors.As(err, &expiredErr):
		writeError(w, http.StatusUnauthorized, codeSessionExpired, expiredErr.Message)
	case ierrors.As(err, &authErr):
		writeError(w, http.StatusUnauthorized, codeNotAuthenticated, authErr.Message)
	case ierrors.As(err, &reqErr):
		status := http.StatusBadGateway
		if reqErr.StatusCode >= 400 && reqErr.StatusCode < 500 {
			status = reqErr.StatusCode
		}
		if reqErr.Err != nil {
			log.Warn().Err(reqErr.Err).Int("status", reqErr.StatusCode).Msg("backend request failed")
		}
		writeError(w, status, codeRequestFailed, reqErr.Message)
	case isValidation(err):
		writeError(w, http.StatusBadRequest, codeValidation, errors.Cause(err).Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, codeInternal, "Internal server error")
	}
}

func isValidation(err error) bool {
	for _, target := range []error{
		ierrors.ErrMissingField,
		ierrors.ErrInvalidSchedule,
		ierrors.ErrInvalidID,
		ierrors.ErrInvalidBody,
		ierrors.ErrInvalidProvider,
		ierrors.ErrMissingCredential,
	} {
		if ierrors.Is(err, target) {
			return true
		}
	}
	return false
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(out); err != nil {
		return ierrors.Wrapf(ierrors.ErrInvalidBody, "%s", err.Error())
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ierrors.Wrapf(ierrors.ErrInvalidID, "%q", raw)
	}
	return id, nil
}

// queryInt reads a positive integer query parameter, 0 when absent or invalid.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
