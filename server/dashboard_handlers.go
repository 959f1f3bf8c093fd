package server

import (
	"net/http"

	"github.com/suryanavv/ims/dashboard"
)

// AnalyticsResponse adds the headline totals to the analytics document.
type AnalyticsResponse struct {
	*dashboard.Analytics
	TotalUsers        int `json:"total_users"`
	TotalIntegrations int `json:"total_integrations"`
	TotalForms        int `json:"total_forms"`
}

func (s *Server) AnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := s.dashboard.Analytics(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AnalyticsResponse{
			Analytics:         a,
			TotalUsers:        a.TotalUsers(),
			TotalIntegrations: a.TotalIntegrations(),
			TotalForms:        a.TotalForms(),
		})
	}
}
