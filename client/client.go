// Package client is the authenticated request wrapper every backend API call
// goes through. It attaches the bearer token and, on a 401, refreshes once and
// retries once.
package client

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
	"github.com/suryanavv/ims/auth"
	ierrors "github.com/suryanavv/ims/internal/errors"
	"github.com/suryanavv/ims/internal/metrics"
	"github.com/suryanavv/ims/internal/transport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const (
	tracerName       = "github.com/suryanavv/ims/client"
	defaultTimeout   = 30 * time.Second
	maxErrorBodySize = 1 << 20
)

// TokenProvider supplies access tokens. *auth.SessionManager satisfies it.
type TokenProvider interface {
	// Token returns the held token or ""
	Token(ctx context.Context) string

	// RefreshToken obtains a new token, "" on failure
	RefreshToken(ctx context.Context) string
}

// Request describes one backend call. Body is held as bytes so a retry resends
// exactly what the first attempt sent.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Body        []byte
}

// Client sends authenticated requests to the backend.
type Client struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient shares an HTTP client, normally the session manager's so both
// use the same cookie jar.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithMetrics records request outcomes and retries in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(cl *Client) {
		cl.tracer = t
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, tokens TokenProvider, options ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, ierrors.Wrapf(ierrors.ErrInvalidBaseURL, "%q", baseURL)
	}
	if tokens == nil {
		return nil, errors.New("[client.New] token provider is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		tokens:  tokens,
	}
	for _, opt := range options {
		opt(c)
	}

	if c.httpClient == nil {
		hc, err := transport.NewHTTPClient(defaultTimeout)
		if err != nil {
			return nil, errors.Wrap(err, "[client.New] http client")
		}
		c.httpClient = hc
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c, nil
}

// Do sends req with the current token. On success the caller owns and must
// close the response body. Failures are *auth.AuthenticationError (no token at
// all), *auth.SessionExpiredError (still unauthorized after one refresh) or
// *auth.RequestFailedError.
func (c *Client) Do(ctx context.Context, req Request) (*http.Response, error) {
	held, err := TokenSource(ctx, c.tokens).Token()
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req, held.AccessToken, 1)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		discard(resp)

		tok := c.tokens.RefreshToken(ctx)
		if tok == "" {
			return nil, &auth.SessionExpiredError{Message: auth.SessionExpiredMessage}
		}

		c.metrics.IncrementRetries()
		log.Debug().Str("method", req.Method).Str("path", req.Path).Msg("retrying request with refreshed token")
		resp, err = c.send(ctx, req, tok, 2)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			discard(resp)
			return nil, &auth.SessionExpiredError{Message: auth.SessionExpiredMessage}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &auth.RequestFailedError{
			StatusCode: resp.StatusCode,
			Message:    apimodel.ParseErrorResponse(body).MessageOr(auth.RequestFailedMessage),
		}
	}
	return resp, nil
}

// DoJSON sends req and decodes a successful response into out (which may be nil).
func (c *Client) DoJSON(ctx context.Context, req Request, out interface{}) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &auth.RequestFailedError{
			StatusCode: resp.StatusCode,
			Message:    auth.RequestFailedMessage,
			Err:        errors.Wrapf(err, "[Client.DoJSON] decode %s %s", req.Method, req.Path),
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, req Request, tok string, attempt int) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	ctx, span := c.tracer.Start(ctx, "ims.backend "+method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", req.Path),
			attribute.Int("ims.attempt", attempt),
		),
	)
	defer span.End()

	target := c.baseURL + ensureLeadingSlash(req.Path)
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, &auth.RequestFailedError{Message: auth.RequestFailedMessage, Err: errors.Wrap(err, "[Client.send] new request")}
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}).SetAuthHeader(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.metrics.ObserveRequest(method, 0)
		return nil, &auth.RequestFailedError{
			Message: auth.RequestFailedMessage,
			Err:     errors.Wrapf(err, "[Client.send] %s %s", method, req.Path),
		}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	c.metrics.ObserveRequest(method, resp.StatusCode)
	return resp, nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
	_ = resp.Body.Close()
}

func ensureLeadingSlash(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "/"
	}
	if strings.HasPrefix(trimmed, "/") {
		return trimmed
	}
	return "/" + trimmed
}
