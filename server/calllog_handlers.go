package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/calllogs"
)

func (s *Server) CallLogClinicsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := s.callLogs.Clinics(r.Context(), queryInt(r, "page"), queryInt(r, "per_page"))
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) CallLogsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := chi.URLParam(r, "phone")
		resp, err := s.callLogs.Logs(r.Context(), phone, queryInt(r, "page"), queryInt(r, "per_page"))
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// TranscriptHandler resolves a call's transcript, inline from its log when the
// log carries one. With ?download=1 it is served as a JSON attachment.
func (s *Server) TranscriptHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := chi.URLParam(r, "phone")
		callID := chi.URLParam(r, "callID")

		callLog := calllogs.CallLog{CallID: callID}
		logs, err := s.callLogs.Logs(r.Context(), phone, 1, calllogs.DefaultPerPage)
		if err != nil {
			writeFailure(w, err)
			return
		}
		if found := logs.Find(callID); found != nil {
			callLog = *found
		}

		transcript, err := s.callLogs.TranscriptFor(r.Context(), phone, callLog)
		if err != nil {
			writeFailure(w, err)
			return
		}

		doc := calllogs.TranscriptDocument{CallID: callID, PhoneNumber: phone, Transcript: transcript}
		if r.URL.Query().Get("download") != "1" {
			writeJSON(w, http.StatusOK, doc)
			return
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			writeFailure(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName()))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			log.Warn().Err(err).Msg("writing transcript download")
		}
	}
}
