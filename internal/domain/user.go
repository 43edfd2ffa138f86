package domain

import "strings"

// Role tags a marketplace account.
type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleSupplier || r == RoleAdmin
}

// ParseRole lowercases the backend role; unknown roles are returned as-is and
// fail IsValid.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// SessionUser is the profile of the signed-in account.
type SessionUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"displayName"`
	FactoryName  string    `json:"factoryName,omitempty"`
	BusinessName string    `json:"businessName,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Location     *GeoPoint `json:"location,omitempty"`
}
