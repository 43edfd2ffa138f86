package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"parts-matching-client/internal/adapters/transport"
	"parts-matching-client/internal/api/dto"
)

func (c *Client) ListDeliveries(ctx context.Context, filter dto.DeliveryFilter) ([]dto.DeliveryDto, error) {
	q := url.Values{}
	if filter.OrderID != "" {
		q.Set("order_id", filter.OrderID)
	}
	if filter.Status != "" {
		q.Set("status", strings.ToUpper(filter.Status))
	}
	return getList[dto.DeliveryDto](ctx, c, "list deliveries", "/api/deliveries", q, "deliveries")
}

func (c *Client) GetDelivery(ctx context.Context, id string) (dto.DeliveryDto, error) {
	return getOne[dto.DeliveryDto](ctx, c, "get delivery "+id, transport.Request{
		Path: "/api/deliveries/" + escape(id),
	})
}

// UpdateDeliveryLocation reports the courier position. Coordinates are
// validated before anything is sent.
func (c *Client) UpdateDeliveryLocation(ctx context.Context, id string, req dto.UpdateLocationRequest) error {
	if err := req.Coordinates.Validate(); err != nil {
		return fmt.Errorf("update delivery %s location: %w", id, err)
	}
	return c.send(ctx, "update delivery "+id+" location", transport.Request{
		Method: http.MethodPost, Path: "/api/deliveries/" + escape(id) + "/location", Body: req,
	})
}
