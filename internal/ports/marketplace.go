package ports

import (
	"context"

	"parts-matching-client/internal/api/dto"
)

// Read-side boundaries of the marketplace backend consumed by views and hooks.

type OrderSource interface {
	ListOrders(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderDto, error)
	GetOrder(ctx context.Context, id string) (dto.OrderDto, error)
}

type DeliverySource interface {
	ListDeliveries(ctx context.Context, filter dto.DeliveryFilter) ([]dto.DeliveryDto, error)
}

type InventorySource interface {
	ListInventory(ctx context.Context, filter dto.InventoryFilter) ([]dto.InventoryItemDto, error)
}

type NotificationSource interface {
	ListNotifications(ctx context.Context) ([]dto.NotificationDto, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

type ProfileSource interface {
	Me(ctx context.Context) (dto.UserDto, error)
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderDto, error)
}

// Marketplace is everything the view server reads from or forwards to the
// backend.
type Marketplace interface {
	OrderSource
	OrderWriter
	DeliverySource
	InventorySource
	NotificationSource
	ProfileSource
}
