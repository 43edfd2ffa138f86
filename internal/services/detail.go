package services

import (
	"time"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
)

func ToOrderDetail(o dto.OrderDto, deliveries []dto.DeliveryDto, now time.Time) domain.OrderDetail {
	return domain.OrderDetail{
		Order: ToOrderView(o),
		Lines: ToOrderLines(o),
		Route: ToRouteView(o, deliveries, now),
	}
}
