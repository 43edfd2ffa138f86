package ports

import "context"

// Port: a key/value capability holding the session pair (token and profile).
// Implementations must treat a missing key as ("", false, nil).
type SessionStore interface {
	// Return the stored value and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Store or replace a value.
	Set(ctx context.Context, key, value string) error
	// Remove all given keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// Contract for supplying the bearer token attached to outbound calls.
type TokenSource interface {
	// Return the current token, or "" when signed out.
	Token(ctx context.Context) (string, error)
}
