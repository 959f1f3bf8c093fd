package server

import (
	"net/http"

	"github.com/suryanavv/ims/clinics"
)

// LogoUpload carries a clinic logo in a JSON body; Content is base64.
type LogoUpload struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

func (l *LogoUpload) toLogo() *clinics.Logo {
	if l == nil || len(l.Content) == 0 {
		return nil
	}
	return &clinics.Logo{Filename: l.Filename, Content: l.Content}
}

type createClinicBody struct {
	clinics.CreateRequest
	Logo *LogoUpload `json:"logo,omitempty"`
}

type updateClinicBody struct {
	clinics.UpdateRequest
	Logo *LogoUpload `json:"logo,omitempty"`
}

func (s *Server) ListClinicsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := s.clinics.List(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) GetClinicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeFailure(w, err)
			return
		}
		resp, err := s.clinics.Get(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) CreateClinicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createClinicBody
		if err := decodeJSON(w, r, &body); err != nil {
			writeFailure(w, err)
			return
		}
		req := body.CreateRequest
		req.Logo = body.Logo.toLogo()

		resp, err := s.clinics.Create(r.Context(), req)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func (s *Server) UpdateClinicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeFailure(w, err)
			return
		}
		var body updateClinicBody
		if err := decodeJSON(w, r, &body); err != nil {
			writeFailure(w, err)
			return
		}
		req := body.UpdateRequest
		req.Logo = body.Logo.toLogo()

		resp, err := s.clinics.Update(r.Context(), id, req)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) DeleteClinicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeFailure(w, err)
			return
		}
		resp, err := s.clinics.Delete(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) ResendOnboardingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			writeFailure(w, err)
			return
		}
		resp, err := s.clinics.ResendOnboarding(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
