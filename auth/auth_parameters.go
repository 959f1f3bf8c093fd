package auth

import (
	"strings"

	ierrors "github.com/suryanavv/ims/internal/errors"
)

// Provider is a federated identity provider the backend can start a login with.
type Provider string

const (
	ProviderMicrosoft Provider = "microsoft"
	ProviderGoogle    Provider = "google"
)

// ParseProvider accepts a provider name in any case.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p Provider) Validate() error {
	switch p {
	case ProviderMicrosoft, ProviderGoogle:
		return nil
	}
	return ierrors.Wrapf(ierrors.ErrInvalidProvider, "provider %q", string(p))
}

// DisplayName is the provider name as shown to users.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderMicrosoft:
		return "Microsoft"
	case ProviderGoogle:
		return "Google"
	}
	return string(p)
}

func (p Provider) initiateFailedMessage() string {
	return "Failed to initiate " + p.DisplayName() + " login"
}
