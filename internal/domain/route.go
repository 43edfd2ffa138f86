package domain

import "time"

// StopType distinguishes the role of a stop within a delivery route.
type StopType string

const (
	StopPickup   StopType = "PICKUP"
	StopDropoff  StopType = "DROPOFF"
	StopWaypoint StopType = "WAYPOINT"
)

// Represents a single stop in a delivery route, in sequence order.
type StopView struct {
	Sequence    int        `json:"sequence"`
	Type        StopType   `json:"type"`
	Address     string     `json:"address,omitempty"`
	Location    *GeoPoint  `json:"location,omitempty"`
	ETA         *time.Time `json:"eta,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// RouteView is the delivery route of one order as shown on tracking screens.
// ETAMinutes is nil when the backend has not published an ETA.
type RouteView struct {
	DeliveryID string         `json:"deliveryId"`
	OrderID    string         `json:"orderId"`
	Status     DeliveryStatus `json:"status"`
	Pickup     StopView       `json:"pickup"`
	Dropoff    StopView       `json:"dropoff"`
	Stops      []StopView     `json:"stops"`
	DriverName string         `json:"driverName,omitempty"`
	ETA        *time.Time     `json:"eta,omitempty"`
	ETAMinutes *int           `json:"etaMinutes,omitempty"`
}
