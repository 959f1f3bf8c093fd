package users

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	ierrors "github.com/suryanavv/ims/internal/errors"
	"github.com/suryanavv/ims/internal/utils"
)

// RoleType is the role the backend asserts for a user. The session layer never
// interprets it; the console uses it for role gating.
type RoleType string

const (
	RoleSuperAdmin  RoleType = "superadmin"   // Manages all clinics, analytics and call logs
	RoleClinicAdmin RoleType = "clinic_admin" // Administers a single clinic and its services
)

// Profile is the identity snapshot captured at login. It is always replaced
// wholesale, never merged field by field.
type Profile struct {
	UserID     int64    `json:"user_id"`               // Backend user id
	Email      string   `json:"email"`                 // Login email
	Role       RoleType `json:"role"`                  // Role asserted by the backend
	FirstName  string   `json:"first_name"`            // First name of the user
	LastName   string   `json:"last_name"`             // Last name of the user
	ClinicID   *int64   `json:"clinic_id,omitempty"`   // Associated clinic (clinic admins)
	ClinicName *string  `json:"clinic_name,omitempty"` // Associated clinic display name
}

// DisplayName returns "First Last", falling back to the email.
func (p *Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Email
	}
	return name
}

func (p *Profile) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

func (p *Profile) IsClinicAdmin() bool {
	return p.Role == RoleClinicAdmin
}

// HasRole reports whether the profile carries any of roles.
func (p *Profile) HasRole(roles ...RoleType) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// ClinicLabel returns the clinic name when known, for display.
func (p *Profile) ClinicLabel() string {
	return utils.Value(p.ClinicName)
}

// Marshal serialises the profile for the durable store.
func (p *Profile) Marshal() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(err, "[Profile.Marshal]")
	}
	return string(b), nil
}

// Unmarshal parses a profile written by Marshal. A document without an email
// and role is treated as corrupt.
func Unmarshal(data string) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, ierrors.Wrapf(ierrors.ErrCorruptProfile, "[users.Unmarshal] %s", err.Error())
	}
	if p.Email == "" && p.Role == "" {
		return nil, ierrors.Wrapf(ierrors.ErrCorruptProfile, "[users.Unmarshal] profile has no identity")
	}
	return &p, nil
}
