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

func orderQuery(f dto.OrderFilter) url.Values {
	q := url.Values{}
	for _, s := range f.Status {
		if s = strings.TrimSpace(s); s != "" {
			q.Add("status", strings.ToUpper(s))
		}
	}
	if f.Urgency != "" {
		q.Set("urgency", strings.ToLower(f.Urgency))
	}
	if f.Active {
		q.Set("active", "true")
	}
	return q
}

func (c *Client) ListOrders(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderDto, error) {
	return getList[dto.OrderDto](ctx, c, "list orders", "/api/orders", orderQuery(filter), "orders")
}

func (c *Client) GetOrder(ctx context.Context, id string) (dto.OrderDto, error) {
	return getOne[dto.OrderDto](ctx, c, "get order "+id, transport.Request{Path: "/api/orders/" + escape(id)})
}

func (c *Client) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderDto, error) {
	if err := req.Validate(); err != nil {
		return dto.OrderDto{}, fmt.Errorf("create order: %w", err)
	}
	return getOne[dto.OrderDto](ctx, c, "create order", transport.Request{
		Method: http.MethodPost, Path: "/api/orders", Body: req,
	})
}

func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.send(ctx, "cancel order "+id, transport.Request{
		Method: http.MethodPost, Path: "/api/orders/" + escape(id) + "/cancel",
	})
}

func (c *Client) AcceptAssignment(ctx context.Context, orderID, assignmentID string) error {
	return c.assignmentAction(ctx, orderID, assignmentID, "accept")
}

func (c *Client) RejectAssignment(ctx context.Context, orderID, assignmentID string) error {
	return c.assignmentAction(ctx, orderID, assignmentID, "reject")
}

func (c *Client) assignmentAction(ctx context.Context, orderID, assignmentID, action string) error {
	op := fmt.Sprintf("%s assignment %s on order %s", action, assignmentID, orderID)
	return c.send(ctx, op, transport.Request{
		Method: http.MethodPost,
		Path:   "/api/orders/" + escape(orderID) + "/assignments/" + escape(assignmentID) + "/" + action,
	})
}
