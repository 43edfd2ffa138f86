package dto

import (
	"fmt"
	"strings"
	"time"

	"parts-matching-client/internal/domain"
)

type StopDto struct {
	ID            ID         `json:"id"`
	Sequence      int        `json:"sequence"`
	StopType      string     `json:"stop_type"`
	AssignmentID  ID         `json:"assignment_id"`
	AssignmentIDs []ID       `json:"assignment_ids"`
	Address       *string    `json:"address"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	ETA           *time.Time `json:"eta"`
	CompletedAt   *time.Time `json:"completed_at"`
}

func (s StopDto) Type() domain.StopType {
	return domain.StopType(strings.ToUpper(strings.TrimSpace(s.StopType)))
}

// References lists every assignment id the stop serves.
func (s StopDto) References() []ID {
	refs := make([]ID, 0, 1+len(s.AssignmentIDs))
	if s.AssignmentID != "" {
		refs = append(refs, s.AssignmentID)
	}
	for _, id := range s.AssignmentIDs {
		if id != "" {
			refs = append(refs, id)
		}
	}
	return refs
}

type DeliveryDto struct {
	ID         ID         `json:"id"`
	Status     string     `json:"status"`
	OrderID    ID         `json:"order_id"`
	DriverName *string    `json:"driver_name"`
	ETA        *time.Time `json:"eta"`
	Stops      []StopDto  `json:"stops"`
	CreatedAt  *time.Time `json:"created_at"`
}

func (d DeliveryDto) DeliveryStatus() domain.DeliveryStatus {
	return domain.DeliveryStatus(strings.ToUpper(strings.TrimSpace(d.Status)))
}

func (d DeliveryDto) Validate() error {
	if d.ID == "" {
		return invalid("delivery.id", "is required")
	}
	if d.Status != "" && !d.DeliveryStatus().IsValid() {
		return invalid("delivery.status", "unknown status %q (delivery %s)", d.Status, d.ID)
	}

	for i, s := range d.Stops {
		if (s.Latitude == nil) != (s.Longitude == nil) {
			return invalid(fmt.Sprintf("delivery.stops[%d]", i), "latitude and longitude must be set together")
		}
	}
	return nil
}

type DeliveryFilter struct {
	OrderID string
	Status  string
}

type UpdateLocationRequest struct {
	Coordinates
	Heading *float64 `json:"heading,omitempty"`
}
