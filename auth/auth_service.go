package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/apimodel"
	ierrors "github.com/suryanavv/ims/internal/errors"
	"github.com/suryanavv/ims/internal/metrics"
	"github.com/suryanavv/ims/internal/transport"
	"github.com/suryanavv/ims/internal/utils"
	"github.com/suryanavv/ims/sessions"
	"github.com/suryanavv/ims/token"
	"github.com/suryanavv/ims/users"
	"golang.org/x/sync/singleflight"
)

// Backend endpoints used by the session manager
const (
	LoginPath       = "/api/auth/login"
	RefreshPath     = "/api/auth/refresh"
	LogoutPath      = "/api/auth/logout"
	SSORedirectPath = "/api/auth/sso-redirect"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 2 * 1024 * 1024
	refreshFlightKey = "refresh"
)

// Stores holds the two stores the session lives in
type Stores struct {
	Volatile sessions.Store // Access token, gone when the process ends
	Durable  sessions.Store // User profile and role, survives restarts
}

// SessionManager is the single owner of the session: the access token, the
// cached profile and the operations that change them. It is safe for
// concurrent use; no lock is held across a network call.
type SessionManager struct {
	baseURL    string
	stores     Stores
	httpClient *http.Client
	opener     URLOpener
	metrics    *metrics.Metrics
	nowTime    func() time.Time

	coalesce     bool
	refreshGroup singleflight.Group
}

// SessionManagerOption defines a function type to modify the SessionManager instance.
type SessionManagerOption func(*SessionManager)

// WithHTTPClient sets the HTTP client. Its cookie jar carries the refresh
// credential, so the request wrapper must share the same client.
func WithHTTPClient(c *http.Client) SessionManagerOption {
	return func(m *SessionManager) {
		m.httpClient = c
	}
}

// WithOpener sets how SSO redirect URLs are opened
func WithOpener(o URLOpener) SessionManagerOption {
	return func(m *SessionManager) {
		m.opener = o
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SessionManagerOption {
	return func(m *SessionManager) {
		m.nowTime = nowFunc
	}
}

// WithCoalescedRefresh makes concurrent RefreshToken calls share one request.
func WithCoalescedRefresh(enabled bool) SessionManagerOption {
	return func(m *SessionManager) {
		m.coalesce = enabled
	}
}

// WithMetrics records login, refresh and SSO outcomes in mt
func WithMetrics(mt *metrics.Metrics) SessionManagerOption {
	return func(m *SessionManager) {
		m.metrics = mt
	}
}

// NewSessionManager creates a session manager talking to the backend at baseURL.
func NewSessionManager(baseURL string, stores Stores, options ...SessionManagerOption) (*SessionManager, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if stores.Volatile == nil {
		return nil, errors.New("[NewSessionManager] volatile store is required")
	}
	if stores.Durable == nil {
		return nil, errors.New("[NewSessionManager] durable store is required")
	}

	m := &SessionManager{
		baseURL: base,
		stores:  stores,
		opener:  BrowserOpener{},
		nowTime: time.Now,
	}

	// Apply optional configuration
	for _, opt := range options {
		opt(m)
	}

	if m.httpClient == nil {
		c, err := transport.NewHTTPClient(defaultTimeout)
		if err != nil {
			return nil, errors.Wrap(err, "[NewSessionManager] http client")
		}
		m.httpClient = c
	}
	return m, nil
}

// HTTPClient returns the client (and cookie jar) used for backend calls.
func (m *SessionManager) HTTPClient() *http.Client {
	return m.httpClient
}

// BaseURL returns the normalised backend base URL
func (m *SessionManager) BaseURL() string {
	return m.baseURL
}

// Login exchanges credentials for a new session and returns the profile.
// The exchange runs to completion even if ctx is cancelled.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*users.Profile, error) {
	ctx = context.WithoutCancel(ctx)

	body, err := json.Marshal(apimodel.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, errors.Wrap(err, "[SessionManager.Login] marshal")
	}

	status, respBody, err := m.send(ctx, http.MethodPost, LoginPath, nil, body, "")
	if err != nil {
		m.metrics.ObserveLogin(false)
		return nil, newAuthError(LoginFailedMessage, err)
	}
	if !successStatus(status) {
		m.metrics.ObserveLogin(false)
		return nil, newAuthError(apimodel.ParseErrorResponse(respBody).DetailOr(LoginFailedMessage), nil)
	}

	var lr apimodel.LoginResponse
	if err := json.Unmarshal(respBody, &lr); err != nil {
		m.metrics.ObserveLogin(false)
		return nil, newAuthError(LoginFailedMessage, errors.Wrap(err, "[SessionManager.Login] decode"))
	}

	profile := lr.ToProfile()
	if err := m.persistLogin(ctx, profile, lr.AccessToken); err != nil {
		m.clear(ctx)
		m.metrics.ObserveLogin(false)
		return nil, newAuthError(LoginFailedMessage, err)
	}

	m.metrics.ObserveLogin(true)
	m.metrics.SetAuthenticated(lr.AccessToken != "")
	log.Info().Str("role", string(profile.Role)).Msg("logged in")
	log.Debug().Str("email", profile.Email).Msg("login identity")
	return profile, nil
}

// persistLogin writes the profile before the token, so a held token always has
// a stored user behind it.
func (m *SessionManager) persistLogin(ctx context.Context, profile *users.Profile, tok string) error {
	encoded, err := profile.Marshal()
	if err != nil {
		return errors.Wrap(err, "[SessionManager.persistLogin] encode profile")
	}
	if err := m.stores.Durable.Set(ctx, sessions.UserKey, encoded); err != nil {
		return errors.Wrap(err, "[SessionManager.persistLogin] store user")
	}
	if err := m.stores.Durable.Set(ctx, sessions.RoleKey, string(profile.Role)); err != nil {
		return errors.Wrap(err, "[SessionManager.persistLogin] store role")
	}
	if tok == "" {
		return nil
	}
	if err := m.stores.Volatile.Set(ctx, sessions.TokenKey, tok); err != nil {
		return errors.Wrap(err, "[SessionManager.persistLogin] store token")
	}
	return nil
}

// InitiateFederatedLogin asks the backend for the provider's authorization URL.
// It does not navigate anywhere.
func (m *SessionManager) InitiateFederatedLogin(ctx context.Context, provider Provider) (string, error) {
	if err := provider.Validate(); err != nil {
		return "", newAuthError(err.Error(), err)
	}

	path := "/api/auth/" + string(provider) + "/initiate"
	status, respBody, err := m.send(ctx, http.MethodGet, path, url.Values{"email": {"login"}}, nil, "")
	if err != nil {
		return "", newAuthError(provider.initiateFailedMessage(), err)
	}
	if !successStatus(status) {
		return "", newAuthError(apimodel.ParseErrorResponse(respBody).DetailOr(provider.initiateFailedMessage()), nil)
	}

	var ar apimodel.AuthURLResponse
	if err := json.Unmarshal(respBody, &ar); err != nil || strings.TrimSpace(ar.AuthURL) == "" {
		return "", newAuthError(provider.initiateFailedMessage(), err)
	}
	return ar.AuthURL, nil
}

// Token returns the stored access token, or "" when there is none.
func (m *SessionManager) Token(ctx context.Context) string {
	tok, err := m.stores.Volatile.Get(ctx, sessions.TokenKey)
	if err != nil {
		if !errors.Is(err, sessions.ErrNotFound) {
			log.Warn().Err(err).Msg("reading access token")
		}
		return ""
	}
	return tok
}

// IsAuthenticated reports whether an access token is held
func (m *SessionManager) IsAuthenticated(ctx context.Context) bool {
	return m.Token(ctx) != ""
}

// RefreshToken exchanges the refresh cookie for a new access token. Every
// failure yields "" and no error.
func (m *SessionManager) RefreshToken(ctx context.Context) string {
	ctx = context.WithoutCancel(ctx)
	if !m.coalesce {
		return m.refresh(ctx)
	}

	v, _, _ := m.refreshGroup.Do(refreshFlightKey, func() (interface{}, error) {
		return m.refresh(ctx), nil
	})
	tok, _ := v.(string)
	return tok
}

func (m *SessionManager) refresh(ctx context.Context) string {
	status, respBody, err := m.send(ctx, http.MethodPost, RefreshPath, nil, nil, "")
	if err != nil {
		log.Debug().Err(err).Msg("token refresh failed")
		m.metrics.ObserveRefresh(false)
		return ""
	}
	if !successStatus(status) {
		log.Debug().Int("status", status).Msg("token refresh rejected")
		m.metrics.ObserveRefresh(false)
		return ""
	}

	var tr apimodel.TokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil || tr.AccessToken == "" {
		log.Debug().Err(err).Msg("token refresh returned no token")
		m.metrics.ObserveRefresh(false)
		return ""
	}

	if err := m.stores.Volatile.Set(ctx, sessions.TokenKey, tr.AccessToken); err != nil {
		log.Warn().Err(err).Msg("storing refreshed access token")
	}
	m.metrics.ObserveRefresh(true)
	m.metrics.SetAuthenticated(true)
	return tr.AccessToken
}

// User returns the cached profile, nil when absent or unreadable.
func (m *SessionManager) User(ctx context.Context) *users.Profile {
	raw, err := m.stores.Durable.Get(ctx, sessions.UserKey)
	if err != nil {
		return nil
	}
	p, err := users.Unmarshal(raw)
	if err != nil {
		log.Debug().Err(err).Msg("ignoring unreadable cached user")
		return nil
	}
	return p
}

// UserRole returns the cached role string, "" when absent.
func (m *SessionManager) UserRole(ctx context.Context) string {
	role, err := m.stores.Durable.Get(ctx, sessions.RoleKey)
	if err != nil {
		return ""
	}
	return role
}

// Snapshot returns the current token, user and role together.
func (m *SessionManager) Snapshot(ctx context.Context) sessions.Snapshot {
	return sessions.Snapshot{
		AccessToken: m.Token(ctx),
		User:        m.User(ctx),
		Role:        m.UserRole(ctx),
	}
}

// Logout tells the backend (best effort, only when a token is held) and then
// clears the session regardless of the outcome.
func (m *SessionManager) Logout(ctx context.Context) {
	if tok := m.Token(ctx); tok != "" {
		status, _, err := m.send(ctx, http.MethodPost, LogoutPath, nil, nil, tok)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("logout API call failed")
		case !successStatus(status):
			log.Warn().Int("status", status).Msg("logout API call rejected")
		}
	}

	m.clear(ctx)
}

// clear removes the token, user and role. Store failures are logged only.
func (m *SessionManager) clear(ctx context.Context) {
	if err := m.stores.Volatile.Delete(ctx, sessions.TokenKey); err != nil {
		log.Warn().Err(err).Msg("clearing access token")
	}
	for _, key := range []string{sessions.UserKey, sessions.RoleKey} {
		if err := m.stores.Durable.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("clearing session data")
		}
	}
	m.metrics.SetAuthenticated(false)
}

// LaunchFederatedService hands the session off to an external application: it
// obtains a one-time redirect URL for serviceName and opens it.
func (m *SessionManager) LaunchFederatedService(ctx context.Context, serviceName string) error {
	tok := m.Token(ctx)
	if tok == "" {
		tok = m.RefreshToken(ctx)
	}
	if tok == "" {
		m.metrics.ObserveSSOLaunch(false)
		return newAuthError(NotAuthenticatedMessage, nil)
	}

	redirectURL, err := m.ssoRedirectURL(ctx, serviceName, tok)
	if err != nil {
		m.metrics.ObserveSSOLaunch(false)
		return err
	}

	if err := m.opener.Open(redirectURL); err != nil {
		m.metrics.ObserveSSOLaunch(false)
		return newAuthError(SSOFailedMessage, err)
	}
	m.metrics.ObserveSSOLaunch(true)
	log.Info().Str("service", serviceName).Msg("launched SSO session")
	return nil
}

func (m *SessionManager) ssoRedirectURL(ctx context.Context, serviceName, tok string) (string, error) {
	path := SSORedirectPath + "?service=" + utils.QueryEscape(serviceName)
	status, respBody, err := m.send(ctx, http.MethodGet, path, nil, nil, tok)
	if err != nil {
		return "", newAuthError(SSOFailedMessage, err)
	}
	if !successStatus(status) {
		return "", newAuthError(apimodel.ParseErrorResponse(respBody).MessageOr(SSOFailedMessage), nil)
	}

	var rr apimodel.RedirectResponse
	if err := json.Unmarshal(respBody, &rr); err != nil || strings.TrimSpace(rr.RedirectURL) == "" {
		return "", newAuthError(SSOFailedMessage, err)
	}
	return rr.RedirectURL, nil
}

// TokenExpiry decodes the exp claim of the current token. It is informational
// and never decides whether a request is sent.
func (m *SessionManager) TokenExpiry(ctx context.Context) (time.Time, bool) {
	return token.Expiry(m.Token(ctx))
}

// TokenExpired reports whether the current token's exp has passed.
func (m *SessionManager) TokenExpired(ctx context.Context) bool {
	return token.Expired(m.Token(ctx), m.nowTime())
}

// send performs one backend call. path may already carry a query string.
func (m *SessionManager) send(ctx context.Context, method, path string, query url.Values, body []byte, bearer string) (int, []byte, error) {
	target := m.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "[SessionManager.send] new request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "[SessionManager.send] %s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "[SessionManager.send] read body")
	}
	return resp.StatusCode, respBody, nil
}

func successStatus(status int) bool {
	return status >= 200 && status < 300
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", ierrors.Wrapf(ierrors.ErrInvalidBaseURL, "%q", raw)
	}
	return strings.TrimRight(trimmed, "/"), nil
}
