package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
)

// NotificationCategory buckets a free-text event type. Rules apply in
// order: ORDER_* is ORDER; anything about DELIVERY or ETA_UPDATED is SYSTEM;
// LOW_STOCK is WARNING; everything else is SYSTEM.
func NotificationCategory(eventType string) domain.NotificationCategory {
	et := strings.ToUpper(strings.TrimSpace(eventType))
	switch {
	case strings.HasPrefix(et, "ORDER_"):
		return domain.NotificationOrder
	case strings.Contains(et, "DELIVERY"), et == "ETA_UPDATED":
		return domain.NotificationSystem
	case strings.Contains(et, "LOW_STOCK"):
		return domain.NotificationWarning
	default:
		return domain.NotificationSystem
	}
}

func ToNotificationView(n dto.NotificationDto) domain.NotificationView {
	v := domain.NotificationView{
		ID:        n.ID.String(),
		Category:  NotificationCategory(n.EventType),
		EventType: n.EventType,
		Title:     strings.TrimSpace(deref(n.Title)),
		Message:   strings.TrimSpace(deref(n.Message)),
		OrderID:   n.OrderID.String(),
		Read:      n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if v.Title == "" {
		v.Title = humanizeEvent(n.EventType)
	}
	return v
}

func ToNotificationViews(ns []dto.NotificationDto) []domain.NotificationView {
	out := make([]domain.NotificationView, 0, len(ns))
	for _, n := range ns {
		out = append(out, ToNotificationView(n))
	}
	return out
}

// humanizeEvent turns ORDER_MATCHED into "Order matched".
func humanizeEvent(eventType string) string {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(eventType), "_", " "))
	if s == "" {
		return "Notification"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
