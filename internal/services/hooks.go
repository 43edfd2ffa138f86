package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
	"parts-matching-client/internal/ports"
	"parts-matching-client/internal/refresh"
)

// NewActiveOrders lists orders that are neither delivered nor cancelled.
func NewActiveOrders(src ports.OrderSource) *refresh.Resource[[]domain.OrderView] {
	return refresh.New(func(ctx context.Context) ([]domain.OrderView, error) {
		orders, err := src.ListOrders(ctx, dto.OrderFilter{Active: true})
		if err != nil {
			return nil, fmt.Errorf("active orders: %w", err)
		}

		views := ToOrdersView(orders)
		active := views[:0]
		for _, v := range views {
			if v.Status.IsActive() {
				active = append(active, v)
			}
		}
		return active, nil
	}, refresh.WithName("active_orders"))
}

// NewOrderList is the unfiltered order table.
func NewOrderList(src ports.OrderSource, filter dto.OrderFilter) *refresh.Resource[[]domain.OrderView] {
	return refresh.New(func(ctx context.Context) ([]domain.OrderView, error) {
		orders, err := src.ListOrders(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("orders: %w", err)
		}
		return ToOrdersView(orders), nil
	}, refresh.WithName("orders"))
}

// LoadOrderDetail fetches the order and the delivery list concurrently and
// derives the detail view.
func LoadOrderDetail(ctx context.Context, orders ports.OrderSource, deliveries ports.DeliverySource, id string, now func() time.Time) (domain.OrderDetail, error) {
	var (
		order dto.OrderDto
		dels  []dto.DeliveryDto
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = orders.GetOrder(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		dels, err = deliveries.ListDeliveries(gctx, dto.DeliveryFilter{OrderID: id})
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.OrderDetail{}, fmt.Errorf("order detail %s: %w", id, err)
	}

	return ToOrderDetail(order, dels, now()), nil
}

func NewOrderDetail(orders ports.OrderSource, deliveries ports.DeliverySource, id string) *refresh.Resource[domain.OrderDetail] {
	return refresh.New(func(ctx context.Context) (domain.OrderDetail, error) {
		return LoadOrderDetail(ctx, orders, deliveries, id, time.Now)
	}, refresh.WithName("order_detail"))
}

func NewInventory(src ports.InventorySource, filter dto.InventoryFilter) *refresh.Resource[[]domain.InventoryItemView] {
	return refresh.New(func(ctx context.Context) ([]domain.InventoryItemView, error) {
		items, err := src.ListInventory(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("inventory: %w", err)
		}
		return ToInventoryViews(items), nil
	}, refresh.WithName("inventory"))
}

func NewDeliveries(src ports.DeliverySource, filter dto.DeliveryFilter) *refresh.Resource[[]domain.DeliveryView] {
	return refresh.New(func(ctx context.Context) ([]domain.DeliveryView, error) {
		dels, err := src.ListDeliveries(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("deliveries: %w", err)
		}
		return ToDeliveriesView(dels), nil
	}, refresh.WithName("deliveries"))
}

func NewProfile(src ports.ProfileSource) *refresh.Resource[domain.SessionUser] {
	return refresh.New(func(ctx context.Context) (domain.SessionUser, error) {
		u, err := src.Me(ctx)
		if err != nil {
			return domain.SessionUser{}, fmt.Errorf("profile: %w", err)
		}
		return ToSessionUser(u), nil
	}, refresh.WithName("profile"))
}
