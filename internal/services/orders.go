package services

import (
	"strings"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
)

// RepresentativeAssignment picks the assignment shown in summary views: the
// first ACCEPTED one across all items, else the first PROPOSED one.
func RepresentativeAssignment(items []dto.OrderItemDto) (dto.AssignmentDto, bool) {
	var proposed *dto.AssignmentDto

	for i := range items {
		for j := range items[i].Assignments {
			a := &items[i].Assignments[j]
			switch a.AssignmentStatus() {
			case domain.AssignmentAccepted:
				return *a, true
			case domain.AssignmentProposed:
				if proposed == nil {
					proposed = a
				}
			}
		}
	}

	if proposed == nil {
		return dto.AssignmentDto{}, false
	}
	return *proposed, true
}

// orderStatus maps the backend string onto the enum. Missing or unknown
// values read as pending; the transport boundary rejects unknown ones.
func orderStatus(s string) domain.OrderStatus {
	st := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if st.IsValid() {
		return st
	}
	return domain.OrderStatusPending
}

func partLabel(item dto.OrderItemDto) (name, number string) {
	number = item.PartNumberValue()
	name = item.DescriptionValue()
	if name == "" {
		name = number
	}
	return name, number
}

// ToOrderView maps an order onto its summary view. It never fails: missing
// items fall back to "Order #<id>" and unknown urgencies become standard.
func ToOrderView(o dto.OrderDto) domain.OrderView {
	v := domain.OrderView{
		OrderID:         o.ID.String(),
		Status:          orderStatus(o.Status),
		Urgency:         domain.ParseUrgency(deref(o.Urgency)),
		ItemCount:       len(o.Items),
		DeliveryAddress: strings.TrimSpace(deref(o.DeliveryAddress)),
		CreatedAt:       o.CreatedAt,
	}

	if len(o.Items) > 0 {
		v.PartName, v.PartNumber = partLabel(o.Items[0])
	}
	if v.PartName == "" {
		v.PartName = "Order #" + o.ID.String()
	}

	for _, item := range o.Items {
		v.Quantity += item.Quantity
	}

	if a, ok := RepresentativeAssignment(o.Items); ok {
		v.SupplierName = strings.TrimSpace(deref(a.SupplierBusinessName))
		v.SupplierID = a.SupplierID.String()
		v.AssignmentID = a.ID.String()
		v.AssignmentStatus = a.AssignmentStatus()
	}

	return v
}

func ToOrdersView(orders []dto.OrderDto) []domain.OrderView {
	out := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderView(o))
	}
	return out
}

// ToOrderLines lists each item with its own representative assignment.
func ToOrderLines(o dto.OrderDto) []domain.OrderLineView {
	lines := make([]domain.OrderLineView, 0, len(o.Items))
	for _, item := range o.Items {
		name, number := partLabel(item)
		line := domain.OrderLineView{
			PartNumber: number,
			PartName:   name,
			Quantity:   item.Quantity,
			Candidates: len(item.Assignments),
		}
		if a, ok := RepresentativeAssignment([]dto.OrderItemDto{item}); ok {
			line.SupplierName = strings.TrimSpace(deref(a.SupplierBusinessName))
			line.AssignmentStatus = a.AssignmentStatus()
		}
		lines = append(lines, line)
	}
	return lines
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
