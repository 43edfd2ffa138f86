package dto

import "parts-matching-client/internal/domain"

// Response envelopes served by the view server.

type ListOrdersResponse struct {
	Orders []domain.OrderView `json:"orders"`
}

type ListDeliveriesResponse struct {
	Deliveries []domain.DeliveryView `json:"deliveries"`
}

type ListInventoryResponse struct {
	Items []domain.InventoryItemView `json:"items"`
}

type ListNotificationsResponse struct {
	Notifications []domain.NotificationView `json:"notifications"`
	Unread        int                       `json:"unread"`
}
