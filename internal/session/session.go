// Package session holds the signed-in token and profile on top of an
// injected SessionStore. Both keys are written and cleared together.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/ports"
)

const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

var ErrEmptyToken = errors.New("session: token is empty")

// Session is the explicit session context handed to surfaces.
type Session struct {
	Token     string
	User      dto.UserDto
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an exp claim in the past.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// Manager reads and writes the session pair. It implements ports.TokenSource.
type Manager struct {
	store ports.SessionStore
}

func NewManager(store ports.SessionStore) *Manager {
	return &Manager{store: store}
}

// Token returns the stored bearer token, or "" when signed out.
func (m *Manager) Token(ctx context.Context) (string, error) {
	v, ok, err := m.store.Get(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

// Current returns the signed-in session, or nil when signed out. A profile
// that fails to parse clears both keys and reads as signed out.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok, err := m.store.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("session user: %w", err)
	}
	if token == "" || !ok {
		return nil, nil
	}

	var user dto.UserDto
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		zap.L().Warn("stored profile is corrupt; clearing session", zap.Error(err))
		if err := m.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	s := &Session{Token: token, User: user}
	if exp, err := TokenExpiry(token); err == nil {
		s.ExpiresAt = exp
	}
	return s, nil
}

// Save stores the token and profile of a fresh login.
func (m *Manager) Save(ctx context.Context, token string, user dto.UserDto) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("save session: encode user: %w", err)
	}

	if err := m.store.Set(ctx, UserKey, string(b)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := m.store.Set(ctx, TokenKey, token); err != nil {
		// Never leave the new profile paired with the previous token.
		if cerr := m.Clear(ctx); cerr != nil {
			zap.L().Warn("roll back partial session", zap.Error(cerr))
		}
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes both keys.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// TokenExpiry reads the exp claim without verifying the signature; the
// backend remains the authority on validity. Opaque tokens return an error.
func TokenExpiry(token string) (*time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("token expiry: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("token expiry: %w", err)
	}
	if exp == nil {
		return nil, nil
	}
	t := exp.Time
	return &t, nil
}
