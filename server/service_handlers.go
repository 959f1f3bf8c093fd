package server

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/apimodel"
	"github.com/suryanavv/ims/catalog"
	"github.com/suryanavv/ims/dashboard"
	ierrors "github.com/suryanavv/ims/internal/errors"
)

// ServicesResponse is what the signed-in user may open.
type ServicesResponse struct {
	Sidebar   []catalog.Card                `json:"sidebar"`
	Dashboard []catalog.Card                `json:"dashboard"`
	Services  []dashboard.NormalizedService `json:"services"`
}

// userServices fetches the normalised services of a clinic admin. Superadmins
// have none.
func (s *Server) userServices(r *http.Request) ([]dashboard.NormalizedService, error) {
	profile := ProfileFromContext(r.Context())
	if profile == nil || !profile.IsClinicAdmin() {
		return nil, nil
	}
	us, err := s.dashboard.UserServices(r.Context())
	if err != nil {
		return nil, err
	}
	return us.Normalize(), nil
}

func (s *Server) ServicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := s.userServices(r)
		if err != nil {
			writeFailure(w, err)
			return
		}
		if services == nil {
			services = []dashboard.NormalizedService{}
		}
		writeJSON(w, http.StatusOK, ServicesResponse{
			Sidebar:   catalog.SidebarCards(ProfileFromContext(r.Context()), dashboard.Keys(services)),
			Dashboard: catalog.VisibleCards(services),
			Services:  services,
		})
	}
}

// LaunchServiceHandler opens a catalog card, through SSO when the backend
// allows it and by its direct URL otherwise.
func (s *Server) LaunchServiceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, ok := catalog.Lookup(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "Unknown service")
			return
		}

		services, err := s.userServices(r)
		if err != nil {
			log.Warn().Err(err).Str("card", card.ID).Msg("loading user services, launching by card title")
		}

		result, err := s.launcher.Launch(r.Context(), card, services)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// SSOHandler launches a federated service by its backend name.
func (s *Server) SSOHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := serviceParam(r)
		if err != nil || name == "" {
			writeFailure(w, ierrors.Wrapf(ierrors.ErrMissingField, "service"))
			return
		}
		if err := s.session.LaunchFederatedService(r.Context(), name); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, apimodel.MessageResponse{Message: "Launched " + name})
	}
}

// serviceParam returns the decoded service segment. chi matches on RawPath when
// it is set, and only then is the parameter still escaped.
func serviceParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "service")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

// UserServicesResponse is the raw user-services document with its match keys.
type UserServicesResponse struct {
	*dashboard.UserServices
	Normalized []dashboard.NormalizedService `json:"normalized"`
}

func (s *Server) UserServicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		us, err := s.dashboard.UserServices(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		normalized := us.Normalize()
		if normalized == nil {
			normalized = []dashboard.NormalizedService{}
		}
		writeJSON(w, http.StatusOK, UserServicesResponse{UserServices: us, Normalized: normalized})
	}
}
