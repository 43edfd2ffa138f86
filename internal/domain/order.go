package domain

import (
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an emergency parts order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusMatching  OrderStatus = "MATCHING"
	OrderStatusMatched   OrderStatus = "MATCHED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks the status against the fixed set the backend emits.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusMatching, OrderStatusMatched, OrderStatusConfirmed,
		OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive is true until the order is delivered or cancelled.
func (s OrderStatus) IsActive() bool {
	return s.IsValid() && s != OrderStatusDelivered && s != OrderStatusCancelled
}

// Urgency is the priority tier attached to an order.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyStandard Urgency = "standard"
)

func (u Urgency) IsValid() bool {
	return u == UrgencyCritical || u == UrgencyUrgent || u == UrgencyStandard
}

// ParseUrgency normalizes free text to a known tier. Anything unrecognized is standard.
func ParseUrgency(s string) Urgency {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	if u.IsValid() {
		return u
	}
	return UrgencyStandard
}

// AssignmentStatus is the sub-status of a supplier assignment on an order line.
type AssignmentStatus string

const (
	AssignmentProposed  AssignmentStatus = "PROPOSED"
	AssignmentAccepted  AssignmentStatus = "ACCEPTED"
	AssignmentRejected  AssignmentStatus = "REJECTED"
	AssignmentFulfilled AssignmentStatus = "FULFILLED"
)

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentProposed, AssignmentAccepted, AssignmentRejected, AssignmentFulfilled:
		return true
	default:
		return false
	}
}

// OrderView is the summary shape rendered in order tables and cards.
// Supplier fields are empty when no assignment has been proposed yet.
type OrderView struct {
	OrderID          string           `json:"orderId"`
	Status           OrderStatus      `json:"status"`
	Urgency          Urgency          `json:"urgency"`
	PartName         string           `json:"partName"`
	PartNumber       string           `json:"partNumber,omitempty"`
	Quantity         int              `json:"quantity"`
	ItemCount        int              `json:"itemCount"`
	SupplierName     string           `json:"supplierName,omitempty"`
	SupplierID       string           `json:"supplierId,omitempty"`
	AssignmentID     string           `json:"assignmentId,omitempty"`
	AssignmentStatus AssignmentStatus `json:"assignmentStatus,omitempty"`
	DeliveryAddress  string           `json:"deliveryAddress,omitempty"`
	CreatedAt        *time.Time       `json:"createdAt,omitempty"`
}

// OrderLineView is one line item of an order detail page.
type OrderLineView struct {
	PartNumber       string           `json:"partNumber"`
	PartName         string           `json:"partName"`
	Quantity         int              `json:"quantity"`
	SupplierName     string           `json:"supplierName,omitempty"`
	AssignmentStatus AssignmentStatus `json:"assignmentStatus,omitempty"`
	Candidates       int              `json:"candidates"`
}

// OrderDetail aggregates an order summary, its lines, and the delivery route
// once one exists. Route is nil while the route is not yet available.
type OrderDetail struct {
	Order OrderView       `json:"order"`
	Lines []OrderLineView `json:"lines"`
	Route *RouteView      `json:"route,omitempty"`
}
