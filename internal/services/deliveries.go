package services

import (
	"strings"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
)

func deliveryStatus(d dto.DeliveryDto) domain.DeliveryStatus {
	if s := d.DeliveryStatus(); s.IsValid() {
		return s
	}
	return domain.DeliveryPending
}

func ToDeliveryView(d dto.DeliveryDto) domain.DeliveryView {
	v := domain.DeliveryView{
		ID:         d.ID.String(),
		Status:     deliveryStatus(d),
		OrderID:    d.OrderID.String(),
		DriverName: strings.TrimSpace(deref(d.DriverName)),
		StopCount:  len(d.Stops),
		ETA:        d.ETA,
	}

	for _, s := range sortedStops(d.Stops) {
		if s.CompletedAt != nil {
			v.CompletedStops++
			continue
		}
		if v.NextStop == nil {
			next := toStopView(s)
			v.NextStop = &next
		}
	}
	return v
}

func ToDeliveriesView(deliveries []dto.DeliveryDto) []domain.DeliveryView {
	out := make([]domain.DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, ToDeliveryView(d))
	}
	return out
}
