package dto

import (
	"net/mail"
	"strings"

	"parts-matching-client/internal/domain"
)

type UserDto struct {
	ID           ID       `json:"id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	FactoryName  *string  `json:"factory_name"`
	BusinessName *string  `json:"business_name"`
	Phone        *string  `json:"phone"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (u UserDto) Validate() error {
	if u.ID == "" {
		return invalid("user.id", "is required")
	}
	if role := domain.ParseRole(u.Role); u.Role != "" && !role.IsValid() {
		return invalid("user.role", "unknown role %q", u.Role)
	}
	if (u.Latitude == nil) != (u.Longitude == nil) {
		return invalid("user.location", "latitude and longitude must be set together")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if err := required("email", r.Email); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return invalid("email", "is not a valid address")
	}
	return required("password", r.Password)
}

type RegisterRequest struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Role         string   `json:"role"`
	FactoryName  string   `json:"factory_name,omitempty"`
	BusinessName string   `json:"business_name,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

func (r RegisterRequest) Validate() error {
	if err := (LoginRequest{Email: r.Email, Password: r.Password}).Validate(); err != nil {
		return err
	}

	role := domain.ParseRole(r.Role)
	if !role.IsValid() || role == domain.RoleAdmin {
		return invalid("role", "must be buyer or supplier")
	}
	if role == domain.RoleBuyer && strings.TrimSpace(r.FactoryName) == "" {
		return invalid("factory_name", "is required for buyers")
	}
	if role == domain.RoleSupplier && strings.TrimSpace(r.BusinessName) == "" {
		return invalid("business_name", "is required for suppliers")
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return invalid("coordinates", "latitude and longitude must be set together")
	}
	if r.Latitude != nil {
		return Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}.Validate()
	}
	return nil
}

// AuthResponse is returned by login and register. Some deployments name the
// token field access_token.
type AuthResponse struct {
	Token       string  `json:"token"`
	AccessToken string  `json:"access_token"`
	User        UserDto `json:"user"`
}

func (r AuthResponse) AuthToken() string {
	if t := strings.TrimSpace(r.Token); t != "" {
		return t
	}
	return strings.TrimSpace(r.AccessToken)
}

func (r AuthResponse) Validate() error {
	if r.AuthToken() == "" {
		return invalid("token", "missing from auth response")
	}
	return r.User.Validate()
}
