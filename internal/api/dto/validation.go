package dto

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports a client-side validation failure. It is raised
// before a request is issued or when a decoded payload breaks the schema.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

// Coordinates is a lat/lng pair as sent to the backend.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseCoordinates validates user-entered coordinates. Non-numeric or
// out-of-range values are rejected.
func ParseCoordinates(lat, lng string) (Coordinates, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinates{}, invalid("latitude", "must be numeric, got %q", lat)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return Coordinates{}, invalid("longitude", "must be numeric, got %q", lng)
	}

	c := Coordinates{Latitude: la, Longitude: lo}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return invalid("latitude", "out of range: %v", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return invalid("longitude", "out of range: %v", c.Longitude)
	}
	return nil
}
