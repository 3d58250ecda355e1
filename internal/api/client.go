// Package api is a typed client for the DamageSnap REST API.
//
// Every call makes exactly one attempt and returns a Result: no retries, no
// client-imposed timeout. Calls that need authentication read the bearer
// token from an auth.Store and fail locally, without touching the network,
// when none is stored.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"damagesnap/internal/auth"
	"damagesnap/internal/observability"

	"github.com/google/uuid"
)

// DefaultBaseURL is the production API.
const DefaultBaseURL = "https://db.xoperr.dev"

const maxResponseBytes = 10 * 1024 * 1024

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the remote API.
type Client struct {
	baseURL    string
	geocodeURL string
	tokens     auth.Store
	http       Doer
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithLogger sets the logger used for per-call debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithGeocodeURL points geocoding at a different host than the API.
func WithGeocodeURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.geocodeURL = strings.TrimRight(u, "/")
		}
	}
}

// New returns a Client for baseURL. An empty baseURL means DefaultBaseURL.
func New(baseURL string, tokens auth.Store, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokens == nil {
		tokens = auth.NewMemoryStore()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    http.DefaultClient,
		logger:  observability.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.geocodeURL == "" {
		c.geocodeURL = c.baseURL
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Tokens returns the token store the client authenticates with.
func (c *Client) Tokens() auth.Store {
	return c.tokens
}

// call describes one remote operation.
type call struct {
	op       string // metric/log label, e.g. "posts.like"
	method   string
	base     string // overrides the client base URL when set
	endpoint string // path plus encoded query
	body     body
	auth     bool
}

func do[T any](ctx context.Context, c *Client, spec call) Result[T] {
	start := time.Now()
	res, sent := send[T](ctx, c, spec)

	status := "local"
	if sent {
		status = strconv.Itoa(res.StatusCode)
	}
	observability.APIRequests.WithLabelValues(spec.op, status).Inc()
	observability.APIRequestLatency.WithLabelValues(spec.op).Observe(time.Since(start).Seconds())

	attrs := []any{
		slog.String("op", spec.op),
		slog.String("method", spec.method),
		slog.String("endpoint", spec.endpoint),
		slog.Int("status", res.StatusCode),
		slog.Duration("latency", time.Since(start)),
	}
	if !res.OK() {
		attrs = append(attrs, slog.String("error", res.Error))
	}
	c.logger.DebugContext(ctx, "api call", attrs...)
	return res
}

// send performs the call. sent is false when the request never reached the
// transport.
func send[T any](ctx context.Context, c *Client, spec call) (res Result[T], sent bool) {
	var token string
	if spec.auth {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			if !errors.Is(err, auth.ErrNoToken) {
				c.logger.WarnContext(ctx, "token store unavailable", slog.String("error", err.Error()))
			}
			return failure[T](http.StatusUnauthorized, noTokenMessage), false
		}
		token = t
	}

	base := spec.base
	if base == "" {
		base = c.baseURL
	}

	var (
		reader      io.Reader
		contentType = "application/json"
	)
	if spec.body != nil {
		r, ct, err := spec.body.encode()
		if err != nil {
			return failure[T](http.StatusInternalServerError, err.Error()), false
		}
		reader, contentType = r, ct
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, base+spec.endpoint, reader)
	if err != nil {
		return failure[T](http.StatusInternalServerError, err.Error()), false
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return failure[T](http.StatusInternalServerError, transportMessage(err)), true
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return failure[T](http.StatusInternalServerError, transportMessage(err)), true
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure[T](resp.StatusCode, normalizeError(raw)), true
	}

	// Empty or undecodable success bodies become the zero value, the same
	// as an empty JSON object.
	data := new(T)
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, data); err != nil {
			c.logger.DebugContext(ctx, "undecodable api response",
				slog.String("op", spec.op), slog.String("error", err.Error()))
			data = new(T)
		}
	}
	return Result[T]{Data: data, StatusCode: resp.StatusCode}, true
}

func requestID(ctx context.Context) string {
	if id := observability.RequestID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func transportMessage(err error) string {
	if err == nil || err.Error() == "" {
		return networkErrorMessage
	}
	return err.Error()
}
