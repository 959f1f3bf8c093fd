// Package catalog holds the partner application cards and decides which of
// them a user may see and how each is launched.
package catalog

import (
	"slices"
	"strings"

	"github.com/suryanavv/ims/dashboard"
	"github.com/suryanavv/ims/users"
)

type Category string

const (
	CategoryApplications Category = "applications"
	CategoryAnalytics    Category = "analytics"
)

// Card is a launchable partner application or an analytics dashboard.
type Card struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	URL         string   `json:"url,omitempty"`
	MatchKeys   []string `json:"match_keys,omitempty"`
}

// Services is the full sidebar catalog.
var Services = []Card{
	{ID: "clinics-dashboard", Title: "Clinqly Calendar", Category: CategoryApplications, URL: "https://staging.clinqly.ai/"},
	{ID: "i-693-application", Title: "I-693 Application", Category: CategoryApplications, URL: "https://ezmedtech.com/"},
	{ID: "ce-application", Title: "CE Application", Category: CategoryApplications, URL: "https://ceform.ezfylr.ai/"},
	{ID: "ezmedtech-onboarding", Title: "Clinic Onboarding", Category: CategoryApplications, URL: "https://onboarding.clinqly.ai/"},
	{ID: "medical-records-doctor", Title: "Medical Records for Doctor Application", Category: CategoryApplications, URL: "https://state-restrain.d3pj1yiwbnvbey.amplifyapp.com/"},
	{ID: "ar-application", Title: "AR Application", Category: CategoryApplications, URL: "https://staging-ar.clinqly.ai/"},

	{ID: "super-admin-dashboard", Title: "Super Admin Dashboard", Category: CategoryAnalytics},
	{ID: "operations-dashboard", Title: "Operations Dashboard", Category: CategoryAnalytics},
	{ID: "sales-dashboard", Title: "Sales Dashboard", Category: CategoryAnalytics},
	{ID: "revenue-dashboard", Title: "Revenue Dashboard", Category: CategoryAnalytics},
	{ID: "clinic-insights", Title: "Clinic Insights", Category: CategoryAnalytics},
	{ID: "digital-marketing-dashboard", Title: "Digital Marketing Dashboard", Category: CategoryAnalytics},
}

// ClinicCards are the cards on the clinic admin dashboard, each shown when one
// of its match keys is among the clinic's service keys.
var ClinicCards = []Card{
	{
		ID:          "clinics-dashboard",
		Title:       "Clinqly Calendar",
		Description: "View patient engagement, today's schedule, AI agent appointments, calendar views, and refill requests.",
		Category:    CategoryApplications,
		URL:         "https://staging.clinqly.ai/",
		MatchKeys:   []string{"google-calendar", "voice-agent", "calendar"},
	},
	{
		ID:          "i-693-application",
		Title:       "I-693 Application",
		Description: "Manage I-693 immigration medical forms and workflows.",
		Category:    CategoryApplications,
		URL:         "https://ezmedtech.com/",
		MatchKeys:   []string{"i-693", "i693"},
	},
	{
		ID:          "ezmedtech-onboarding",
		Title:       "Clinic / Dental Onboarding",
		Description: "Onboard new clinics and dental practices with guided workflows.",
		Category:    CategoryApplications,
		URL:         "https://onboarding.clinqly.ai/",
		MatchKeys:   []string{"dental", "open-dental", "onboarding"},
	},
	{
		ID:          "ar-dashboard",
		Title:       "AR Dashboard",
		Description: "Track and manage accounts receivable performance.",
		Category:    CategoryApplications,
		URL:         "https://staging-ar.clinqly.ai/",
		MatchKeys:   []string{"ar", "account-receivable", "accounts-receivable"},
	},
}

// ClinicCard returns the clinic dashboard card with id
func ClinicCard(id string) (Card, bool) {
	for _, c := range ClinicCards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// Lookup finds a card by id, preferring the clinic dashboard card.
func Lookup(id string) (Card, bool) {
	if c, ok := ClinicCard(id); ok {
		return c, true
	}
	for _, c := range Services {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// VisibleCards returns the clinic cards matching any of the services.
func VisibleCards(services []dashboard.NormalizedService) []Card {
	cards := []Card{}
	if len(services) == 0 {
		return cards
	}
	for _, c := range ClinicCards {
		if c.MatchedService(services) != nil {
			cards = append(cards, c)
		}
	}
	return cards
}

// MatchedService returns the first service whose key is one of the card's match keys.
func (c Card) MatchedService(services []dashboard.NormalizedService) *dashboard.NormalizedService {
	for i := range services {
		if slices.Contains(c.MatchKeys, services[i].Key) {
			return &services[i]
		}
	}
	return nil
}

// SSOServiceName is the backend's own name for the matched service, else the card title.
func (c Card) SSOServiceName(services []dashboard.NormalizedService) string {
	if s := c.MatchedService(services); s != nil && s.OriginalName != "" {
		return s.OriginalName
	}
	return c.Title
}

// SidebarServiceIDs maps service keys onto sidebar card ids. The matching is
// looser than the dashboard's: any key mentioning a calendar counts.
func SidebarServiceIDs(keys []string) []string {
	var ids []string
	add := func(id string) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	for _, key := range keys {
		if strings.Contains(key, "calendar") || key == "voice-agent" {
			add("clinics-dashboard")
		}
		if key == "i-693" || key == "i693" {
			add("i-693-application")
		}
		if key == "dental" || key == "open-dental" || strings.Contains(key, "onboarding") {
			add("ezmedtech-onboarding")
		}
		if key == "ar" || strings.Contains(key, "account-receivable") {
			add("ar-application")
		}
	}
	return ids
}

// SidebarCards returns the sidebar catalog for profile. Superadmins see
// everything; clinic admins only the cards their service keys unlock.
func SidebarCards(profile *users.Profile, keys []string) []Card {
	if profile == nil || !profile.IsClinicAdmin() {
		return slices.Clone(Services)
	}
	allowed := SidebarServiceIDs(keys)
	cards := []Card{}
	for _, c := range Services {
		if slices.Contains(allowed, c.ID) {
			cards = append(cards, c)
		}
	}
	return cards
}

// ByCategory keeps only the cards in category
func ByCategory(cards []Card, category Category) []Card {
	out := []Card{}
	for _, c := range cards {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}
