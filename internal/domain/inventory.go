package domain

// InventoryItemView is a supplier catalog entry as listed to buyers and suppliers.
type InventoryItemView struct {
	ID            string  `json:"id"`
	SupplierID    string  `json:"supplierId,omitempty"`
	SupplierName  string  `json:"supplierName,omitempty"`
	PartNumber    string  `json:"partNumber"`
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Quantity      int     `json:"quantity"`
	LeadTimeHours int     `json:"leadTimeHours"`
	InStock       bool    `json:"inStock"`
	LowStock      bool    `json:"lowStock"`
}
