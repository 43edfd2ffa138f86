package dto

import (
	"fmt"
	"strings"
	"time"

	"parts-matching-client/internal/domain"
)

type AssignmentDto struct {
	ID                   ID         `json:"id"`
	Status               string     `json:"status"`
	SupplierID           ID         `json:"supplier_id"`
	SupplierBusinessName *string    `json:"supplier_business_name"`
	InventoryItemID      ID         `json:"inventory_item_id"`
	Price                *float64   `json:"price"`
	EstimatedReadyAt     *time.Time `json:"estimated_ready_at"`
}

func (a AssignmentDto) AssignmentStatus() domain.AssignmentStatus {
	return domain.AssignmentStatus(strings.ToUpper(strings.TrimSpace(a.Status)))
}

type OrderItemDto struct {
	ID          ID              `json:"id"`
	PartNumber  *string         `json:"part_number"`
	Description *string         `json:"description"`
	Quantity    int             `json:"quantity"`
	Assignments []AssignmentDto `json:"assignments"`
}

func (i OrderItemDto) PartNumberValue() string  { return strings.TrimSpace(deref(i.PartNumber)) }
func (i OrderItemDto) DescriptionValue() string { return strings.TrimSpace(deref(i.Description)) }

type OrderDto struct {
	ID              ID             `json:"id"`
	Status          string         `json:"status"`
	Urgency         *string        `json:"urgency"`
	BuyerID         ID             `json:"buyer_id"`
	DeliveryAddress *string        `json:"delivery_address"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	Items           []OrderItemDto `json:"items"`
	CreatedAt       *time.Time     `json:"created_at"`
	UpdatedAt       *time.Time     `json:"updated_at"`
}

// Validate enforces the enumerated status sets. An empty status is tolerated
// (treated as pending by the view layer); an unknown one is a schema break.
func (o OrderDto) Validate() error {
	if o.ID == "" {
		return invalid("order.id", "is required")
	}

	if strings.TrimSpace(o.Status) != "" {
		if s := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(o.Status))); !s.IsValid() {
			return invalid("order.status", "unknown status %q (order %s)", o.Status, o.ID)
		}
	}

	for i, item := range o.Items {
		for j, a := range item.Assignments {
			if a.Status == "" {
				continue
			}
			if !a.AssignmentStatus().IsValid() {
				return invalid(
					fmt.Sprintf("order.items[%d].assignments[%d].status", i, j),
					"unknown status %q (order %s)", a.Status, o.ID,
				)
			}
		}
	}

	return nil
}

// OrderFilter narrows GET /api/orders.
type OrderFilter struct {
	Status  []string
	Urgency string
	Active  bool
}

type CreateOrderItem struct {
	PartNumber  string `json:"part_number"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Urgency         string            `json:"urgency"`
	DeliveryAddress string            `json:"delivery_address"`
	Latitude        *float64          `json:"latitude,omitempty"`
	Longitude       *float64          `json:"longitude,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Items           []CreateOrderItem `json:"items"`
}

func (r CreateOrderRequest) Validate() error {
	if err := required("delivery_address", r.DeliveryAddress); err != nil {
		return err
	}

	if r.Urgency != "" && !domain.Urgency(strings.ToLower(r.Urgency)).IsValid() {
		return invalid("urgency", "must be one of critical, urgent, standard")
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		return invalid("coordinates", "latitude and longitude must be set together")
	}
	if r.Latitude != nil {
		if err := (Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}).Validate(); err != nil {
			return err
		}
	}

	if len(r.Items) == 0 {
		return invalid("items", "at least one item is required")
	}
	for i, item := range r.Items {
		if err := required(fmt.Sprintf("items[%d].part_number", i), item.PartNumber); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return invalid(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
	}

	return nil
}
