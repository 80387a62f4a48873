// Package backend is the HTTP adapter for the raffle REST API.
//
// Every request is decorated with the bearer token of the calling browser
// context. 401 and 403 responses run the registered hooks before the typed
// error (domain.ErrUnauthenticated / domain.ErrForbidden) is returned, so by
// the time a caller sees the error the session has already been cleared.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

const (
	DefaultBaseURL = "https://multisorteios.dev/msrifaadmin/api"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

// Call outcomes reported to the Observer.
const (
	OutcomeOK           = "ok"
	OutcomeLogical      = "logical_failure"
	OutcomeUnauthorized = "unauthorized"
	OutcomeForbidden    = "forbidden"
	OutcomeError        = "error"
)

// TokenSource yields the bearer token of the browser context carried by ctx.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Hook is run on 401/403 responses before the error is returned.
type Hook func(ctx context.Context)

// Observer receives one observation per backend call.
type Observer interface {
	ObserveBackendCall(endpoint, outcome string, elapsed time.Duration)
}

// Envelope is the response wrapper used by every backend endpoint.
type Envelope[T any] struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Data         T      `json:"data"`
}

// Client is the raffle backend adapter.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized Hook
	onForbidden    Hook
	observer       Observer
	log            zerolog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook registers the forced-logout hook for 401 responses.
func WithUnauthorizedHook(h Hook) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// WithForbiddenHook registers the hook for 403 responses.
func WithForbiddenHook(h Hook) Option {
	return func(c *Client) { c.onForbidden = h }
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTokenSource wires the token source after construction; the session
// service itself depends on the client, so it cannot be passed to New.
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

// SetUnauthorizedHook wires the 401 hook after construction.
func (c *Client) SetUnauthorizedHook(h Hook) { c.onUnauthorized = h }

// SetForbiddenHook wires the 403 hook after construction.
func (c *Client) SetForbiddenHook(h Hook) { c.onForbidden = h }

// request describes one backend call. Public requests carry no bearer token
// and bypass the 401/403 hooks.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	public bool
}

// do sends the request and decodes the envelope. A success=false envelope is
// returned as-is with a nil error: callers must check Success themselves.
func do[T any](ctx context.Context, c *Client, r request) (*Envelope[T], error) {
	start := time.Now()
	raw, err := c.send(ctx, r)
	if err != nil {
		c.observe(r.path, outcomeOf(err), start)
		return nil, err
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		c.observe(r.path, OutcomeError, start)
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrBackendUnavailable, r.path, err)
	}

	outcome := OutcomeOK
	if !env.Success {
		outcome = OutcomeLogical
	}
	c.observe(r.path, outcome, start)
	return &env, nil
}

// expect is do plus the success check: success=false becomes *domain.LogicalError.
func expect[T any](ctx context.Context, c *Client, r request) (T, error) {
	var zero T
	env, err := do[T](ctx, c, r)
	if err != nil {
		return zero, err
	}
	if !env.Success {
		return zero, &domain.LogicalError{Endpoint: r.path, Message: env.ErrorMessage}
	}
	return env.Data, nil
}

func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	var reader io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", r.path, err)
		}
		reader = bytes.NewReader(b)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !r.public && c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, r.method, r.path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", r.method).
		Str("endpoint", r.path).
		Int("status", resp.StatusCode).
		Msg("backend call")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, resp.Body)
		if r.public {
			return nil, domain.ErrInvalidCredentials
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, domain.ErrUnauthenticated
	case resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		if r.public {
			return nil, domain.ErrInvalidCredentials
		}
		if c.onForbidden != nil {
			c.onForbidden(ctx)
		}
		return nil, domain.ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s %s: status %d", domain.ErrBackendUnavailable, r.method, r.path, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrBackendUnavailable, r.path, err)
	}
	return raw, nil
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackendCall(endpoint, outcome, time.Since(start))
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return OutcomeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return OutcomeForbidden
	default:
		return OutcomeError
	}
}

// Ping reports whether the backend answers HTTP. Any status below 500 counts
// as reachable; no token is sent and no hook runs.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/validatetoken", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ping: %v", domain.ErrBackendUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: ping: status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}
