package clinics

import (
	"context"

	"github.com/suryanavv/ims/apimodel"
)

// Repo is the clinic administration API.
type Repo interface {
	// List returns every clinic with its integrations and forms
	List(ctx context.Context) (*ListResponse, error)

	// Get returns the detail document of one clinic
	Get(ctx context.Context, clinicID int64) (*Detail, error)

	// Create creates a clinic and its admin user
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)

	// Update replaces a clinic's details and access
	Update(ctx context.Context, clinicID int64, req UpdateRequest) (*UpdateResponse, error)

	// Delete removes a clinic
	Delete(ctx context.Context, clinicID int64) (*apimodel.MessageResponse, error)

	// ResendOnboarding emails a user their onboarding link again
	ResendOnboarding(ctx context.Context, userID int64) (*apimodel.MessageResponse, error)
}
