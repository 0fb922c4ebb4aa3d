// Package client is the console's gateway to the backend REST API. It is a
// thin wrapper over the HTTP verbs: every request carries the bearer token of
// the operator on whose behalf it is made, and nothing is retried or cached.
package client

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

	"github.com/erazemk/konzola/internal/model"
)

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// TokenSource returns the bearer token to send with a request. It is
// consulted on every request.
type TokenSource func(ctx context.Context) string

// Observer is notified after every backend round trip. Status is 0 when the
// request failed before a response arrived.
type Observer func(method, path string, status int, elapsed time.Duration)

// Client calls the backend API.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	token    TokenSource
	observer Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource replaces the default context-based token lookup.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithObserver registers a round-trip observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url must be http or https, got %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		token:   TokenFromContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type ctxKey int

const (
	tokenKey ctxKey = iota
	requestIDKey
)

// ContextWithToken attaches a bearer token to ctx.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token attached to ctx, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// ContextWithRequestID attaches a request id that is forwarded to the
// backend as X-Request-ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id attached to ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Get sends GET path and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON with POST and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON with PUT and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Patch sends body as JSON with PATCH and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete sends DELETE path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, reader, contentType, out)
}

// do performs one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, path, 0, time.Since(start))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.observe(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &SchemaError{Path: path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// resolve joins an already escaped path onto the base URL.
func (c *Client) resolve(path string) string {
	return c.baseURL.String() + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) observe(method, path string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer(method, path, status, elapsed)
	}
}

// getList fetches a JSON array and validates every element.
func getList[T any, PT interface {
	*T
	model.Validator
}](ctx context.Context, c *Client, path string) ([]T, error) {
	var items []T
	if err := c.Get(ctx, path, &items); err != nil {
		return nil, err
	}
	if err := validateAll[T, PT](path, items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// getOne fetches a JSON object and validates it.
func getOne[T any, PT interface {
	*T
	model.Validator
}](ctx context.Context, c *Client, path string) (*T, error) {
	item := new(T)
	if err := c.Get(ctx, path, item); err != nil {
		return nil, err
	}
	if err := PT(item).Validate(); err != nil {
		return nil, &SchemaError{Path: path, Err: err}
	}
	return item, nil
}

func validateAll[T any, PT interface {
	*T
	model.Validator
}](path string, items []T) error {
	for i := range items {
		if err := PT(&items[i]).Validate(); err != nil {
			return &SchemaError{Path: path, Err: fmt.Errorf("item %d: %w", i, err)}
		}
	}
	return nil
}
