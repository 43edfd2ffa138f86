package dto

import (
	"encoding/json"
	"time"
)

type NotificationDto struct {
	ID        ID              `json:"id"`
	EventType string          `json:"event_type"`
	Title     *string         `json:"title"`
	Message   *string         `json:"message"`
	OrderID   ID              `json:"order_id"`
	IsRead    bool            `json:"is_read"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt *time.Time      `json:"created_at"`
}

func (n NotificationDto) Validate() error {
	if n.ID == "" {
		return invalid("notification.id", "is required")
	}
	return nil
}
