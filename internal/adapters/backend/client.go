// Package backend maps the marketplace REST surface onto typed calls. Each
// response is decoded into DTOs and validated before it reaches callers.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"parts-matching-client/internal/adapters/transport"
)

// Doer is the transport capability the backend needs.
type Doer interface {
	Do(ctx context.Context, r transport.Request, out any) error
}

type Client struct {
	api Doer
}

func New(api Doer) *Client {
	return &Client{api: api}
}

type validator interface {
	Validate() error
}

// listKeys are the envelope keys a list endpoint may wrap its array in.
var listKeys = []string{"items", "data", "results"}

// getList fetches a collection that is either a bare JSON array or an object
// wrapping one under key or one of listKeys.
func getList[T any](ctx context.Context, c *Client, op, path string, query url.Values, key string) ([]T, error) {
	var raw json.RawMessage
	if err := c.api.Do(ctx, transport.Request{Path: path, Query: query}, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	arr, err := listPayload(raw, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]T, 0)
	if arr == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(arr), &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	for i := range out {
		if v, ok := any(out[i]).(validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}
	return out, nil
}

func listPayload(raw json.RawMessage, key string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("malformed json response")
	}

	res := gjson.ParseBytes(raw)
	switch {
	case res.IsArray():
		return res.Raw, nil
	case res.Type == gjson.Null:
		return "", nil
	case !res.IsObject():
		return "", fmt.Errorf("expected a list, got %s", res.Type)
	}

	keys := listKeys
	if key != "" {
		keys = append([]string{key}, listKeys...)
	}
	for _, k := range keys {
		if v := res.Get(k); v.IsArray() {
			return v.Raw, nil
		}
	}
	return "", fmt.Errorf("expected a list, got object without %v", keys)
}

// getOne fetches and validates a single resource.
func getOne[T any](ctx context.Context, c *Client, op string, r transport.Request) (T, error) {
	var out T
	if err := c.api.Do(ctx, r, &out); err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	if v, ok := any(out).(validator); ok {
		if err := v.Validate(); err != nil {
			return out, fmt.Errorf("%s: %w", op, err)
		}
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, op string, r transport.Request) error {
	if err := c.api.Do(ctx, r, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) rawObject(ctx context.Context, op, path string, query url.Values) (map[string]any, error) {
	var out map[string]any
	if err := c.api.Do(ctx, transport.Request{Path: path, Query: query}, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func escape(id string) string { return url.PathEscape(id) }
