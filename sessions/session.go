package sessions

import "github.com/suryanavv/ims/users"

// Storage keys. The values match what the web client has always written so an
// existing durable store stays readable.
const (
	TokenKey = "ims_access_token" // volatile: bearer access token
	UserKey  = "user"             // durable: JSON serialised users.Profile
	RoleKey  = "userRole"         // durable: redundant copy of the profile role
)

// Snapshot is a point-in-time view of the session.
//
// The refresh credential is deliberately absent: it is an http-only cookie held
// by the transport's cookie jar and is never materialised in application code.
type Snapshot struct {
	AccessToken string         // Empty when no access token is held
	User        *users.Profile // Nil when absent or unreadable
	Role        string         // Cached role string, may be empty
}

// Authenticated reports whether an access token is held. It says nothing about
// whether the backend still accepts it.
func (s Snapshot) Authenticated() bool {
	return s.AccessToken != ""
}
