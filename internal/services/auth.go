package services

import (
	"strings"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
)

// DisplayName falls back through factory name, business name, and the local
// part of the email address.
func DisplayName(u dto.UserDto) string {
	if n := strings.TrimSpace(deref(u.FactoryName)); n != "" {
		return n
	}
	if n := strings.TrimSpace(deref(u.BusinessName)); n != "" {
		return n
	}
	local, _, _ := strings.Cut(strings.TrimSpace(u.Email), "@")
	return local
}

func ToSessionUser(u dto.UserDto) domain.SessionUser {
	su := domain.SessionUser{
		ID:           u.ID.String(),
		Email:        strings.TrimSpace(u.Email),
		Role:         domain.ParseRole(u.Role),
		DisplayName:  DisplayName(u),
		FactoryName:  strings.TrimSpace(deref(u.FactoryName)),
		BusinessName: strings.TrimSpace(deref(u.BusinessName)),
		Phone:        strings.TrimSpace(deref(u.Phone)),
	}
	if u.Latitude != nil && u.Longitude != nil {
		su.Location = &domain.GeoPoint{Lat: *u.Latitude, Lng: *u.Longitude}
	}
	return su
}
