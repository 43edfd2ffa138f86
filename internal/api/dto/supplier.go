package dto

type SupplierDto struct {
	ID           ID       `json:"id"`
	BusinessName string   `json:"business_name"`
	Email        string   `json:"email"`
	Phone        *string  `json:"phone"`
	Rating       *float64 `json:"rating"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// MatchCandidateDto is one supplier offer produced by the server-side matcher.
type MatchCandidateDto struct {
	SupplierID           ID       `json:"supplier_id"`
	SupplierBusinessName string   `json:"supplier_business_name"`
	InventoryItemID      ID       `json:"inventory_item_id"`
	PartNumber           string   `json:"part_number"`
	Score                float64  `json:"score"`
	DistanceKm           *float64 `json:"distance_km"`
	Price                *float64 `json:"price"`
	EstimatedMinutes     *int     `json:"estimated_minutes"`
}
