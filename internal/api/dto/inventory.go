package dto

type InventoryItemDto struct {
	ID                   ID       `json:"id"`
	SupplierID           ID       `json:"supplier_id"`
	SupplierBusinessName *string  `json:"supplier_business_name"`
	PartNumber           *string  `json:"part_number"`
	Name                 *string  `json:"name"`
	Description          *string  `json:"description"`
	Category             *string  `json:"category"`
	Price                *float64 `json:"price"`
	Currency             *string  `json:"currency"`
	Quantity             int      `json:"quantity"`
	ReorderLevel         *int     `json:"reorder_level"`
	LeadTimeHours        *int     `json:"lead_time_hours"`
}

func (i InventoryItemDto) Validate() error {
	if i.ID == "" {
		return invalid("inventory.id", "is required")
	}
	if i.Quantity < 0 {
		return invalid("inventory.quantity", "must not be negative (item %s)", i.ID)
	}
	if i.Price != nil && *i.Price < 0 {
		return invalid("inventory.price", "must not be negative (item %s)", i.ID)
	}
	return nil
}

type InventoryFilter struct {
	Query      string
	SupplierID string
	Category   string
}

// InventoryItemInput is the create/update payload for a catalog entry.
type InventoryItemInput struct {
	PartNumber    string  `json:"part_number"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category,omitempty"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency,omitempty"`
	Quantity      int     `json:"quantity"`
	LeadTimeHours int     `json:"lead_time_hours"`
}

func (in InventoryItemInput) Validate() error {
	if err := required("part_number", in.PartNumber); err != nil {
		return err
	}
	if err := required("name", in.Name); err != nil {
		return err
	}
	if in.Price < 0 {
		return invalid("price", "must not be negative")
	}
	if in.Quantity < 0 {
		return invalid("quantity", "must not be negative")
	}
	if in.LeadTimeHours < 0 {
		return invalid("lead_time_hours", "must not be negative")
	}
	return nil
}
