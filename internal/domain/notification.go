package domain

import "time"

// NotificationCategory is the coarse bucket a notification is rendered under.
type NotificationCategory string

const (
	NotificationOrder   NotificationCategory = "ORDER"
	NotificationSystem  NotificationCategory = "SYSTEM"
	NotificationWarning NotificationCategory = "WARNING"
)

type NotificationView struct {
	ID        string               `json:"id"`
	Category  NotificationCategory `json:"category"`
	EventType string               `json:"eventType"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	OrderID   string               `json:"orderId,omitempty"`
	Read      bool                 `json:"read"`
	CreatedAt *time.Time           `json:"createdAt,omitempty"`
}
