package transport

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

	"github.com/google/uuid"

	"parts-matching-client/internal/platform/metrics"
	"parts-matching-client/internal/platform/obs"
	"parts-matching-client/internal/ports"
)

// Client issues authenticated JSON calls against the marketplace backend.
//
// By default there are no retries and no timeout: every failure surfaces to
// the caller immediately. MaxAttempts > 1 enables backoff retries for GETs.
//
// The client is safe for concurrent use.
type Client struct {
	session     *http.Client
	baseURL     string
	tokens      ports.TokenSource
	maxAttempts int
	backoff     time.Duration
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// Request describes one backend call. Body is JSON-encoded unless it is a
// *Multipart.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers http.Header
}

func NewClient(cfg Config, tokens ports.TokenSource) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("new transport client: invalid base url %q", cfg.BaseURL)
	}

	session := cfg.HTTPClient
	if session == nil {
		session = &http.Client{Timeout: cfg.Timeout}
	}

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &Client{
		session:     session,
		baseURL:     base,
		tokens:      tokens,
		maxAttempts: attempts,
		backoff:     200 * time.Millisecond,
	}, nil
}

type tokenKey struct{}

// WithToken overrides the token source for calls made with ctx. The view
// server uses it to forward the caller's bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Do sends r and decodes a JSON response into out. A 204 or empty body
// leaves out untouched (an empty map for *map[string]any).
func (c *Client) Do(ctx context.Context, r Request, out any) (err error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("transport: path %q must start with /", r.Path)
	}

	defer obs.Time(ctx, "api "+method+" "+r.Path)(&err)

	payload, contentType, err := encodeBody(r.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, r.Path, err)
	}

	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("%s %s: read session token: %w", method, r.Path, err)
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = c.maxAttempts
	}

	resp, err := c.doWithRetry(ctx, attempts, func() (*http.Request, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		return c.newRequest(ctx, method, r, body, contentType, token)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp, method, r.Path, out)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

func (c *Client) token(ctx context.Context) (string, error) {
	if t, ok := ctx.Value(tokenKey{}).(string); ok {
		return t, nil
	}
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Token(ctx)
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	r Request,
	body io.Reader,
	contentType string,
	token string,
) (*http.Request, error) {
	endpoint := c.baseURL + r.Path
	if len(r.Query) > 0 {
		endpoint += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	reqID := obs.RequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	// Explicit caller headers win, including Content-Type.
	for k, vs := range r.Headers {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(req.Method, 0)
		return nil, &NetworkError{Method: req.Method, Path: req.URL.Path, Err: err}
	}
	metrics.ObserveBackendCall(req.Method, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, newAPIError(resp, b)
	}
	return resp, nil
}

func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Multipart:
		return b.encode()
	case json.RawMessage:
		return b, "application/json", nil
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("marshal request body: %w", err)
		}
		return payload, "application/json", nil
	}
}

func decodeBody(resp *http.Response, method, path string, out any) error {
	if resp.StatusCode == http.StatusNoContent {
		emptyObject(out)
		return nil
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: fmt.Errorf("read response body: %w", err)}
	}

	if len(bytes.TrimSpace(b)) == 0 {
		emptyObject(out)
		return nil
	}
	if out == nil {
		return nil
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func emptyObject(out any) {
	if m, ok := out.(*map[string]any); ok && *m == nil {
		*m = map[string]any{}
	}
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}
