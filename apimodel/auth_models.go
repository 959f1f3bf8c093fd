package apimodel

import "github.com/suryanavv/ims/users"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned from a successful login.
// The identity fields are flattened next to the token.
type LoginResponse struct {
	// AccessToken is the bearer token for subsequent API calls.
	AccessToken string `json:"access_token"`

	// TokenType is normally "bearer".
	TokenType string `json:"token_type,omitempty"`

	UserID     int64          `json:"user_id"`
	Email      string         `json:"email"`
	Role       users.RoleType `json:"role"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	ClinicID   *int64         `json:"clinic_id,omitempty"`
	ClinicName *string        `json:"clinic_name,omitempty"`
}

// ToProfile extracts the user snapshot cached after login.
func (r *LoginResponse) ToProfile() *users.Profile {
	return &users.Profile{
		UserID:     r.UserID,
		Email:      r.Email,
		Role:       r.Role,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		ClinicID:   r.ClinicID,
		ClinicName: r.ClinicName,
	}
}

// TokenResponse is returned from POST /api/auth/refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// AuthURLResponse is returned from the federated login initiate endpoints.
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// RedirectResponse is returned from GET /api/auth/sso-redirect.
type RedirectResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// MessageResponse is the generic `{message}` acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
