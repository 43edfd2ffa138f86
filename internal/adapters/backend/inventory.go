package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"parts-matching-client/internal/adapters/transport"
	"parts-matching-client/internal/api/dto"
)

func (c *Client) ListInventory(ctx context.Context, filter dto.InventoryFilter) ([]dto.InventoryItemDto, error) {
	q := url.Values{}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.SupplierID != "" {
		q.Set("supplier_id", filter.SupplierID)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	return getList[dto.InventoryItemDto](ctx, c, "list inventory", "/api/inventory", q, "inventory")
}

func (c *Client) GetInventoryItem(ctx context.Context, id string) (dto.InventoryItemDto, error) {
	return getOne[dto.InventoryItemDto](ctx, c, "get inventory item "+id, transport.Request{
		Path: "/api/inventory/" + escape(id),
	})
}

func (c *Client) CreateInventoryItem(ctx context.Context, in dto.InventoryItemInput) (dto.InventoryItemDto, error) {
	if err := in.Validate(); err != nil {
		return dto.InventoryItemDto{}, fmt.Errorf("create inventory item: %w", err)
	}
	return getOne[dto.InventoryItemDto](ctx, c, "create inventory item", transport.Request{
		Method: http.MethodPost, Path: "/api/inventory", Body: in,
	})
}

func (c *Client) UpdateInventoryItem(ctx context.Context, id string, in dto.InventoryItemInput) (dto.InventoryItemDto, error) {
	if err := in.Validate(); err != nil {
		return dto.InventoryItemDto{}, fmt.Errorf("update inventory item %s: %w", id, err)
	}
	return getOne[dto.InventoryItemDto](ctx, c, "update inventory item "+id, transport.Request{
		Method: http.MethodPut, Path: "/api/inventory/" + escape(id), Body: in,
	})
}

func (c *Client) DeleteInventoryItem(ctx context.Context, id string) error {
	return c.send(ctx, "delete inventory item "+id, transport.Request{
		Method: http.MethodDelete, Path: "/api/inventory/" + escape(id),
	})
}

// ImportResult is the backend's summary of a bulk CSV import.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// ImportInventoryCSV uploads a catalog CSV as multipart/form-data.
func (c *Client) ImportInventoryCSV(ctx context.Context, fileName string, csv io.Reader) (ImportResult, error) {
	body := &transport.Multipart{
		Files: []transport.FilePart{{Field: "file", FileName: fileName, Content: csv}},
	}
	return getOne[ImportResult](ctx, c, "import inventory", transport.Request{
		Method: http.MethodPost, Path: "/api/inventory/import", Body: body,
	})
}
