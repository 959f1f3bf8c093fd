package clinics

import (
	"encoding/json"
	"strings"
	"time"

	ierrors "github.com/suryanavv/ims/internal/errors"
	"github.com/suryanavv/ims/internal/utils"
)

// Integration is a partner integration assigned to a clinic.
type Integration struct {
	IntegrationID        int64   `json:"integration_id"`
	IntegrationName      string  `json:"integration_name"`
	ServiceName          string  `json:"service_name"`
	TwilioPhoneNumber    *string `json:"twilio_phone_number,omitempty"`
	DeveloperAPIKey      *string `json:"developer_api_key,omitempty"`
	ShepherdProviderName *string `json:"shepherd_provider_name,omitempty"`
	ShepherdClinicID     *string `json:"shepherd_clinic_id,omitempty"`
}

// Form is an intake form assigned to a clinic.
type Form struct {
	FormID   int64  `json:"form_id"`
	FormName string `json:"form_name"`
}

type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// ScheduleDay holds opening hours as "HH:MM" strings.
type ScheduleDay struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

// Schedule is a weekly schedule keyed by English weekday name ("Monday").
type Schedule map[string]ScheduleDay

const hoursLayout = "15:04"

// Validate checks weekday keys and, for open days, that close is after open.
func (s Schedule) Validate() error {
	for day, hours := range s {
		if !isWeekday(day) {
			return ierrors.Wrapf(ierrors.ErrInvalidSchedule, "unknown day %q", day)
		}
		if hours.Closed {
			continue
		}
		open, err := time.Parse(hoursLayout, hours.Open)
		if err != nil {
			return ierrors.Wrapf(ierrors.ErrInvalidSchedule, "%s open %q", day, hours.Open)
		}
		closing, err := time.Parse(hoursLayout, hours.Close)
		if err != nil {
			return ierrors.Wrapf(ierrors.ErrInvalidSchedule, "%s close %q", day, hours.Close)
		}
		if !closing.After(open) {
			return ierrors.Wrapf(ierrors.ErrInvalidSchedule, "%s closes before it opens", day)
		}
	}
	return nil
}

// Encode renders the schedule as the JSON string the backend expects in a form field.
func (s Schedule) Encode() (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isWeekday(day string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == day {
			return true
		}
	}
	return false
}

// Clinic is one row of the clinic listing.
type Clinic struct {
	ClinicID       int64         `json:"clinic_id"`
	ClinicName     string        `json:"clinic_name"`
	Email          string        `json:"email"`
	Phone          *string       `json:"phone,omitempty"`
	Address        *Address      `json:"address,omitempty"`
	CreatedAt      string        `json:"created_at"`
	ServiceID      *int64        `json:"service_id,omitempty"`
	Fax            *string       `json:"fax,omitempty"`
	WebsiteURL     *string       `json:"website_url,omitempty"`
	CSID           *string       `json:"csid,omitempty"`
	LogoURL        *string       `json:"logo_url,omitempty"`
	AdminName      *string       `json:"admin_name,omitempty"`
	AdminMobile    *string       `json:"admin_mobile,omitempty"`
	AdminUserID    *int64        `json:"admin_user_id,omitempty"`
	ClinicSchedule Schedule      `json:"clinic_schedule,omitempty"`
	Integrations   []Integration `json:"integrations"`
	Forms          []Form        `json:"forms"`
}

// IntegrationIDs returns the ids of the assigned integrations
func (c *Clinic) IntegrationIDs() []int64 {
	ids := make([]int64, 0, len(c.Integrations))
	for _, i := range c.Integrations {
		ids = append(ids, i.IntegrationID)
	}
	return ids
}

// FormIDs returns the ids of the assigned forms
func (c *Clinic) FormIDs() []int64 {
	ids := make([]int64, 0, len(c.Forms))
	for _, f := range c.Forms {
		ids = append(ids, f.FormID)
	}
	return ids
}

type ListResponse struct {
	Clinics []Clinic `json:"clinics"`
	Total   int      `json:"total"`
}

// Detail is the loosely typed clinic detail document.
type Detail struct {
	Clinic        map[string]interface{}   `json:"clinic"`
	Users         []map[string]interface{} `json:"users"`
	Integrations  []map[string]interface{} `json:"integrations"`
	Forms         []map[string]interface{} `json:"forms"`
	TwilioNumbers []map[string]interface{} `json:"twilio_numbers"`
}

// Logo is an optional image uploaded with a create or update.
type Logo struct {
	Filename string
	Content  []byte
}

// Details are the optional fields shared by create and update. Empty values are
// not sent.
type Details struct {
	AddressStreet         string   `json:"address_street,omitempty"`
	AddressCity           string   `json:"address_city,omitempty"`
	AddressState          string   `json:"address_state,omitempty"`
	AddressZip            string   `json:"address_zip,omitempty"`
	Fax                   string   `json:"fax,omitempty"`
	WebsiteURL            string   `json:"website_url,omitempty"`
	CSID                  string   `json:"csid,omitempty"`
	IntegrationAccess     []int64  `json:"integration_access,omitempty"`
	FormAccess            []int64  `json:"form_access,omitempty"`
	TwilioNumbers         string   `json:"twilio_numbers,omitempty"`
	DeveloperAPIKeys      string   `json:"developer_api_keys,omitempty"`
	ShepherdProviderNames string   `json:"shepherd_provider_names,omitempty"`
	ShepherdClinicIDs     string   `json:"shepherd_clinic_ids,omitempty"`
	Schedule              Schedule `json:"clinic_schedule,omitempty"`
}

// CreateRequest creates a clinic together with its admin user.
type CreateRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	ClinicName   string `json:"clinic_name"`
	Phone        string `json:"phone"`
	MobileNumber string `json:"mobile_number"`
	Details
	Logo *Logo `json:"-"`
}

func (r *CreateRequest) Validate() error {
	if err := requireFields(map[string]string{
		"full_name":     r.FullName,
		"email":         r.Email,
		"clinic_name":   r.ClinicName,
		"phone":         r.Phone,
		"mobile_number": r.MobileNumber,
	}); err != nil {
		return err
	}
	return r.Schedule.Validate()
}

// UpdateRequest replaces a clinic's details and access.
type UpdateRequest struct {
	ClinicName string `json:"clinic_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Details
	Logo *Logo `json:"-"`
}

func (r *UpdateRequest) Validate() error {
	if err := requireFields(map[string]string{
		"clinic_name": r.ClinicName,
		"email":       r.Email,
	}); err != nil {
		return err
	}
	return r.Schedule.Validate()
}

type CreateResponse struct {
	Message              string `json:"message"`
	ClinicID             int64  `json:"clinic_id"`
	UserID               int64  `json:"user_id"`
	IntegrationsAssigned int    `json:"integrations_assigned"`
	FormsAssigned        int    `json:"forms_assigned"`
}

type UpdateResponse struct {
	Message              string `json:"message"`
	ClinicID             int64  `json:"clinic_id"`
	IntegrationsAssigned int    `json:"integrations_assigned"`
	FormsAssigned        int    `json:"forms_assigned"`
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return ierrors.Wrapf(ierrors.ErrMissingField, "%s", strings.Join(utils.Sorted(missing), ", "))
}
