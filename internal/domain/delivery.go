package domain

import "time"

// DeliveryStatus is the courier-side state of a delivery.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
	DeliveryCancelled DeliveryStatus = "CANCELLED"
)

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryPending, DeliveryAssigned, DeliveryPickedUp, DeliveryInTransit,
		DeliveryDelivered, DeliveryFailed, DeliveryCancelled:
		return true
	default:
		return false
	}
}

// DeliveryView is a row of the deliveries table.
type DeliveryView struct {
	ID             string         `json:"id"`
	Status         DeliveryStatus `json:"status"`
	OrderID        string         `json:"orderId,omitempty"`
	DriverName     string         `json:"driverName,omitempty"`
	StopCount      int            `json:"stopCount"`
	CompletedStops int            `json:"completedStops"`
	NextStop       *StopView      `json:"nextStop,omitempty"`
	ETA            *time.Time     `json:"eta,omitempty"`
}
