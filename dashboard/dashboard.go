package dashboard

import "github.com/suryanavv/ims/internal/utils"

// Analytics are the platform-wide counters shown on the superadmin overview.
type Analytics struct {
	TotalClinics int            `json:"total_clinics"`
	UsersByRole  map[string]int `json:"users_by_role"`
	Integrations map[string]int `json:"integrations"`
	Forms        map[string]int `json:"forms"`
}

func (a *Analytics) TotalUsers() int {
	return sum(a.UsersByRole)
}

func (a *Analytics) TotalIntegrations() int {
	return sum(a.Integrations)
}

func (a *Analytics) TotalForms() int {
	return sum(a.Forms)
}

func sum(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// UserServices lists what the logged-in user's clinic has access to. Items are
// kept loosely typed; only their names are interpreted.
type UserServices struct {
	Integrations []map[string]interface{} `json:"integrations,omitempty"`
	Forms        []map[string]interface{} `json:"forms,omitempty"`
	Clinic       map[string]interface{}   `json:"clinic,omitempty"`
}

// Service kinds
const (
	KindIntegration = "integration"
	KindForm        = "form"
)

// NormalizedService is a backend integration or form reduced to a match key.
type NormalizedService struct {
	Key          string `json:"key"`           // lower-case, whitespace replaced with "-"
	OriginalName string `json:"original_name"` // name exactly as the backend sent it
	Kind         string `json:"kind"`
}

// Normalize extracts service keys: integrations by integration_name, falling
// back to service_name, then forms by form_name. Nameless items are skipped.
func (u *UserServices) Normalize() []NormalizedService {
	if u == nil {
		return nil
	}

	var out []NormalizedService
	for _, item := range u.Integrations {
		name := stringField(item, "integration_name")
		if name == "" {
			name = stringField(item, "service_name")
		}
		if name != "" {
			out = append(out, NormalizedService{Key: utils.Slug(name), OriginalName: name, Kind: KindIntegration})
		}
	}
	for _, item := range u.Forms {
		if name := stringField(item, "form_name"); name != "" {
			out = append(out, NormalizedService{Key: utils.Slug(name), OriginalName: name, Kind: KindForm})
		}
	}
	return out
}

// Keys returns just the match keys of services
func Keys(services []NormalizedService) []string {
	keys := make([]string, 0, len(services))
	for _, s := range services {
		keys = append(keys, s.Key)
	}
	return keys
}

func stringField(item map[string]interface{}, field string) string {
	s, _ := item[field].(string)
	return s
}
