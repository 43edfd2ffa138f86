package backend

import (
	"context"
	"fmt"
	"net/http"

	"parts-matching-client/internal/adapters/transport"
	"parts-matching-client/internal/api/dto"
)

func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("login: %w", err)
	}
	return getOne[dto.AuthResponse](ctx, c, "login", transport.Request{
		Method: http.MethodPost, Path: "/api/auth/login", Body: req,
	})
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("register: %w", err)
	}
	return getOne[dto.AuthResponse](ctx, c, "register", transport.Request{
		Method: http.MethodPost, Path: "/api/auth/register", Body: req,
	})
}

func (c *Client) Me(ctx context.Context) (dto.UserDto, error) {
	return getOne[dto.UserDto](ctx, c, "me", transport.Request{Path: "/api/auth/me"})
}

// Logout tells the backend to drop the session. Backends without a logout
// endpoint answer 404, which is not an error for the caller.
func (c *Client) Logout(ctx context.Context) error {
	err := c.send(ctx, "logout", transport.Request{Method: http.MethodPost, Path: "/api/auth/logout"})
	if transport.IsStatus(err, http.StatusNotFound) {
		return nil
	}
	return err
}
