package catalog

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/auth"
	"github.com/suryanavv/ims/dashboard"
)

// Launch modes
const (
	ModeSSO    = "sso"
	ModeDirect = "direct"
)

// FederatedLauncher performs the SSO hand-off. *auth.SessionManager satisfies it.
type FederatedLauncher interface {
	LaunchFederatedService(ctx context.Context, serviceName string) error
}

// LaunchResult reports how a card was opened.
type LaunchResult struct {
	CardID      string `json:"card_id"`
	ServiceName string `json:"service_name"`
	Mode        string `json:"mode"`
	URL         string `json:"url,omitempty"`
	Reason      string `json:"reason,omitempty"` // why SSO was not used
}

// Launcher opens cards through SSO, falling back to the card's own URL.
type Launcher struct {
	sso    FederatedLauncher
	opener auth.URLOpener
}

func NewLauncher(sso FederatedLauncher, opener auth.URLOpener) *Launcher {
	return &Launcher{sso: sso, opener: opener}
}

// Launch tries SSO with the service name the backend knows the card by. Any SSO
// failure is logged and the card's direct URL is opened instead.
func (l *Launcher) Launch(ctx context.Context, card Card, services []dashboard.NormalizedService) (*LaunchResult, error) {
	result := &LaunchResult{CardID: card.ID, ServiceName: card.SSOServiceName(services)}

	err := l.sso.LaunchFederatedService(ctx, result.ServiceName)
	if err == nil {
		result.Mode = ModeSSO
		return result, nil
	}

	log.Warn().Err(err).Str("card", card.ID).Msg("SSO launch failed, falling back to direct URL")
	if card.URL == "" {
		return nil, err
	}
	if oerr := l.opener.Open(card.URL); oerr != nil {
		return nil, errors.Wrapf(oerr, "[Launcher.Launch] open %s", card.URL)
	}

	result.Mode = ModeDirect
	result.URL = card.URL
	result.Reason = auth.DisplayMessage(err, auth.SSOFailedMessage)
	return result, nil
}
