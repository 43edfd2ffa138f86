package services

import (
	"strings"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
)

const (
	DefaultReorderLevel = 5
	DefaultCurrency     = "USD"
)

func ToInventoryView(i dto.InventoryItemDto) domain.InventoryItemView {
	v := domain.InventoryItemView{
		ID:            i.ID.String(),
		SupplierID:    i.SupplierID.String(),
		SupplierName:  strings.TrimSpace(deref(i.SupplierBusinessName)),
		PartNumber:    strings.TrimSpace(deref(i.PartNumber)),
		Name:          strings.TrimSpace(deref(i.Name)),
		Category:      strings.TrimSpace(deref(i.Category)),
		Price:         deref(i.Price),
		Currency:      strings.ToUpper(strings.TrimSpace(deref(i.Currency))),
		Quantity:      i.Quantity,
		LeadTimeHours: deref(i.LeadTimeHours),
	}

	if v.Name == "" {
		v.Name = strings.TrimSpace(deref(i.Description))
	}
	if v.Name == "" {
		v.Name = v.PartNumber
	}
	if v.Currency == "" {
		v.Currency = DefaultCurrency
	}

	reorder := DefaultReorderLevel
	if i.ReorderLevel != nil {
		reorder = *i.ReorderLevel
	}
	v.InStock = i.Quantity > 0
	v.LowStock = v.InStock && i.Quantity <= reorder

	return v
}

func ToInventoryViews(items []dto.InventoryItemDto) []domain.InventoryItemView {
	out := make([]domain.InventoryItemView, 0, len(items))
	for _, i := range items {
		out = append(out, ToInventoryView(i))
	}
	return out
}
