package sessions

import (
	"context"

	ierrors "github.com/suryanavv/ims/internal/errors"
)

// ErrNotFound is returned by Store.Get for absent keys.
var ErrNotFound = ierrors.ErrNotFound

// Store is a string key/value store. The session manager owns two of them: a
// volatile one for the access token (cleared when the process ends) and a
// durable one for the user profile (survives restarts). No other component
// reads or writes them.
type Store interface {
	// Get returns the value for key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the value for key
	Set(ctx context.Context, key, value string) error

	// Delete removes key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}
