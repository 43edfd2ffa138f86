package backend

import (
	"context"
	"net/http"

	"parts-matching-client/internal/adapters/transport"
	"parts-matching-client/internal/api/dto"
)

func (c *Client) ListNotifications(ctx context.Context) ([]dto.NotificationDto, error) {
	return getList[dto.NotificationDto](ctx, c, "list notifications", "/api/notifications", nil, "notifications")
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.send(ctx, "mark notification "+id+" read", transport.Request{
		Method: http.MethodPatch, Path: "/api/notifications/" + escape(id) + "/read",
	})
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.send(ctx, "mark all notifications read", transport.Request{
		Method: http.MethodPost, Path: "/api/notifications/read-all",
	})
}
