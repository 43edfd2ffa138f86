package backend

import (
	"context"
	"net/http"
	"net/url"

	"parts-matching-client/internal/adapters/transport"
	"parts-matching-client/internal/api/dto"
)

// Suppliers, matching, analytics, admin and user endpoints.

func (c *Client) ListSuppliers(ctx context.Context) ([]dto.SupplierDto, error) {
	return getList[dto.SupplierDto](ctx, c, "list suppliers", "/api/suppliers", nil, "suppliers")
}

func (c *Client) GetSupplier(ctx context.Context, id string) (dto.SupplierDto, error) {
	return getOne[dto.SupplierDto](ctx, c, "get supplier "+id, transport.Request{
		Path: "/api/suppliers/" + escape(id),
	})
}

func (c *Client) MatchCandidates(ctx context.Context, orderID string) ([]dto.MatchCandidateDto, error) {
	return getList[dto.MatchCandidateDto](ctx, c, "match candidates for order "+orderID,
		"/api/matching/orders/"+escape(orderID)+"/candidates", nil, "candidates")
}

// RunMatching asks the server-side matcher to (re)propose suppliers.
func (c *Client) RunMatching(ctx context.Context, orderID string) (dto.OrderDto, error) {
	return getOne[dto.OrderDto](ctx, c, "run matching for order "+orderID, transport.Request{
		Method: http.MethodPost, Path: "/api/matching/orders/" + escape(orderID) + "/run",
	})
}

// AnalyticsSummary is passed through untyped; its shape is role-dependent.
func (c *Client) AnalyticsSummary(ctx context.Context, period string) (map[string]any, error) {
	var q url.Values
	if period != "" {
		q = url.Values{"period": {period}}
	}
	return c.rawObject(ctx, "analytics summary", "/api/analytics/summary", q)
}

func (c *Client) AdminDashboard(ctx context.Context) (map[string]any, error) {
	return c.rawObject(ctx, "admin dashboard", "/api/admin/dashboard", nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]dto.UserDto, error) {
	return getList[dto.UserDto](ctx, c, "list users", "/api/users", nil, "users")
}

func (c *Client) GetUser(ctx context.Context, id string) (dto.UserDto, error) {
	return getOne[dto.UserDto](ctx, c, "get user "+id, transport.Request{Path: "/api/users/" + escape(id)})
}
