package services

import (
	"encoding/json"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func decodeOrder(t *testing.T, raw string) dto.OrderDto {
	t.Helper()
	var o dto.OrderDto
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	return o
}

func TestToOrderView_ProposedAssignmentFallsBackToPartNumber(t *testing.T) {
	o := decodeOrder(t, `{"id":7,"urgency":"critical","items":[{"part_number":"X1","assignments":[{"status":"PROPOSED","id":9,"supplier_business_name":"Acme"}]}]}`)

	got := ToOrderView(o)
	want := domain.OrderView{
		OrderID:          "7",
		Status:           domain.OrderStatusPending,
		Urgency:          domain.UrgencyCritical,
		PartName:         "X1",
		PartNumber:       "X1",
		ItemCount:        1,
		SupplierName:     "Acme",
		AssignmentID:     "9",
		AssignmentStatus: domain.AssignmentProposed,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToOrderView mismatch (-want +got):\n%s", diff)
	}
}

func TestToOrderView_NoAssignments(t *testing.T) {
	o := dto.OrderDto{ID: "3", Status: "MATCHING", Items: []dto.OrderItemDto{{PartNumber: ptr("P-1"), Quantity: 2}}}

	v := ToOrderView(o)
	if v.SupplierName != "" || v.AssignmentID != "" {
		t.Fatalf("expected no supplier, got %+v", v)
	}
	if v.Status != domain.OrderStatusMatching {
		t.Fatalf("status = %s", v.Status)
	}
	if v.Quantity != 2 {
		t.Fatalf("quantity = %d", v.Quantity)
	}
}

func TestToOrderView_NoItemsUsesOrderLabel(t *testing.T) {
	v := ToOrderView(dto.OrderDto{ID: "42"})
	if v.PartName != "Order #42" {
		t.Fatalf("part name = %q", v.PartName)
	}
	if v.PartNumber != "" {
		t.Fatalf("part number = %q", v.PartNumber)
	}
}

func TestToOrderView_DescriptionWins(t *testing.T) {
	o := dto.OrderDto{ID: "1", Items: []dto.OrderItemDto{{PartNumber: ptr("B-77"), Description: ptr("Bearing 6204")}}}
	v := ToOrderView(o)
	if v.PartName != "Bearing 6204" || v.PartNumber != "B-77" {
		t.Fatalf("got name=%q number=%q", v.PartName, v.PartNumber)
	}
}

func TestToOrderView_AcceptedBeatsProposedInAnyOrder(t *testing.T) {
	proposed := dto.AssignmentDto{ID: "p", Status: "PROPOSED", SupplierBusinessName: ptr("Proposed Co")}
	accepted := dto.AssignmentDto{ID: "a", Status: "accepted", SupplierBusinessName: ptr("Accepted Co")}
	rejected := dto.AssignmentDto{ID: "r", Status: "REJECTED", SupplierBusinessName: ptr("Rejected Co")}

	orders := [][]dto.AssignmentDto{
		{proposed, accepted},
		{accepted, proposed},
		{rejected, proposed, accepted},
	}
	for i, as := range orders {
		o := dto.OrderDto{ID: "1", Items: []dto.OrderItemDto{{PartNumber: ptr("X"), Assignments: as}}}
		if got := ToOrderView(o).SupplierName; got != "Accepted Co" {
			t.Errorf("case %d: supplier = %q", i, got)
		}
	}

	// Across items too.
	o := dto.OrderDto{ID: "1", Items: []dto.OrderItemDto{
		{PartNumber: ptr("X"), Assignments: []dto.AssignmentDto{proposed}},
		{PartNumber: ptr("Y"), Assignments: []dto.AssignmentDto{accepted}},
	}}
	if got := ToOrderView(o).AssignmentID; got != "a" {
		t.Fatalf("assignment = %q", got)
	}
}

func TestToOrderView_OnlyRejectedHasNoSupplier(t *testing.T) {
	o := dto.OrderDto{ID: "1", Items: []dto.OrderItemDto{{Assignments: []dto.AssignmentDto{{ID: "r", Status: "REJECTED", SupplierBusinessName: ptr("Nope")}}}}}
	if got := ToOrderView(o).SupplierName; got != "" {
		t.Fatalf("supplier = %q", got)
	}
}

func TestToOrderView_UnknownUrgencyIsStandard(t *testing.T) {
	for _, u := range []*string{nil, ptr(""), ptr("ASAP"), ptr("emergency")} {
		if got := ToOrderView(dto.OrderDto{ID: "1", Urgency: u}).Urgency; got != domain.UrgencyStandard {
			t.Errorf("urgency %v -> %s", u, got)
		}
	}
	if got := ToOrderView(dto.OrderDto{ID: "1", Urgency: ptr("URGENT")}).Urgency; got != domain.UrgencyUrgent {
		t.Fatalf("URGENT -> %s", got)
	}
}

func TestToOrdersView_Empty(t *testing.T) {
	got := ToOrdersView(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v", got)
	}
}

func TestToOrderLines(t *testing.T) {
	o := dto.OrderDto{ID: "1", Items: []dto.OrderItemDto{
		{PartNumber: ptr("X"), Quantity: 1, Assignments: []dto.AssignmentDto{{ID: "1", Status: "PROPOSED", SupplierBusinessName: ptr("A")}, {ID: "2", Status: "PROPOSED"}}},
		{PartNumber: ptr("Y"), Quantity: 3},
	}}
	lines := ToOrderLines(o)
	want := []domain.OrderLineView{
		{PartNumber: "X", PartName: "X", Quantity: 1, SupplierName: "A", AssignmentStatus: domain.AssignmentProposed, Candidates: 2},
		{PartNumber: "Y", PartName: "Y", Quantity: 3},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestETAMinutes(t *testing.T) {
	cases := []struct {
		eta  time.Time
		want int
	}{
		{now.Add(15 * time.Minute), 15},
		{now.Add(90 * time.Second), 2},
		{now.Add(89 * time.Second), 1},
		{now.Add(29 * time.Second), 0},
		{now, 0},
		{now.Add(-10 * time.Minute), 0},
	}
	for _, c := range cases {
		if got := ETAMinutes(c.eta, now); got != c.want {
			t.Errorf("ETAMinutes(%v) = %d, want %d", c.eta.Sub(now), got, c.want)
		}
	}
}

func routeOrder() dto.OrderDto {
	return dto.OrderDto{ID: "7", Items: []dto.OrderItemDto{{
		PartNumber:  ptr("X1"),
		Assignments: []dto.AssignmentDto{{ID: "9", Status: "ACCEPTED"}},
	}}}
}

func TestToRouteView(t *testing.T) {
	eta := now.Add(25 * time.Minute)
	deliveries := []dto.DeliveryDto{
		{ID: "other", Stops: []dto.StopDto{
			{Sequence: 1, StopType: "pickup", AssignmentID: "100"},
			{Sequence: 2, StopType: "dropoff", AssignmentID: "100"},
		}},
		{ID: "d1", Status: "in_transit", DriverName: ptr("Sam"), Stops: []dto.StopDto{
			{Sequence: 2, StopType: "DROPOFF", AssignmentIDs: []dto.ID{"9"}, Address: ptr("Plant 4"), ETA: &eta},
			{Sequence: 1, StopType: "PICKUP", AssignmentID: "9", Latitude: ptr(33.4), Longitude: ptr(-112.0)},
		}},
	}

	rv := ToRouteView(routeOrder(), deliveries, now)
	if rv == nil {
		t.Fatal("expected a route")
	}
	if rv.DeliveryID != "d1" || rv.Status != domain.DeliveryInTransit || rv.DriverName != "Sam" {
		t.Fatalf("unexpected route header %+v", rv)
	}
	if rv.Pickup.Sequence != 1 || rv.Pickup.Location == nil || rv.Dropoff.Address != "Plant 4" {
		t.Fatalf("unexpected stops pickup=%+v dropoff=%+v", rv.Pickup, rv.Dropoff)
	}
	if len(rv.Stops) != 2 || rv.Stops[0].Type != domain.StopPickup {
		t.Fatalf("stops not sorted: %+v", rv.Stops)
	}
	if rv.ETAMinutes == nil || *rv.ETAMinutes != 25 {
		t.Fatalf("eta minutes = %v", rv.ETAMinutes)
	}
}

func TestToRouteView_RequiresPickupAndDropoff(t *testing.T) {
	onlyPickup := []dto.DeliveryDto{{ID: "d", Stops: []dto.StopDto{{Sequence: 1, StopType: "PICKUP", AssignmentID: "9"}}}}
	if rv := ToRouteView(routeOrder(), onlyPickup, now); rv != nil {
		t.Fatalf("expected nil without dropoff, got %+v", rv)
	}

	onlyDropoff := []dto.DeliveryDto{{ID: "d", Stops: []dto.StopDto{{Sequence: 1, StopType: "DROPOFF", AssignmentID: "9"}}}}
	if rv := ToRouteView(routeOrder(), onlyDropoff, now); rv != nil {
		t.Fatalf("expected nil without pickup, got %+v", rv)
	}
}

func TestToRouteView_NoMatchOrNoAssignments(t *testing.T) {
	dels := []dto.DeliveryDto{{ID: "d", Stops: []dto.StopDto{
		{Sequence: 1, StopType: "PICKUP", AssignmentID: "1"},
		{Sequence: 2, StopType: "DROPOFF", AssignmentID: "1"},
	}}}
	if rv := ToRouteView(routeOrder(), dels, now); rv != nil {
		t.Fatalf("expected nil for unrelated delivery")
	}
	if rv := ToRouteView(dto.OrderDto{ID: "1"}, dels, now); rv != nil {
		t.Fatalf("expected nil for order without assignments")
	}
	if rv := ToRouteView(routeOrder(), nil, now); rv != nil {
		t.Fatalf("expected nil for no deliveries")
	}
}

func TestToRouteView_PastETAClampsAndDeliveryETAFallback(t *testing.T) {
	past := now.Add(-time.Hour)
	dels := []dto.DeliveryDto{{ID: "d", ETA: &past, Stops: []dto.StopDto{
		{Sequence: 1, StopType: "PICKUP", AssignmentID: "9"},
		{Sequence: 2, StopType: "DROPOFF", AssignmentID: "9"},
	}}}
	rv := ToRouteView(routeOrder(), dels, now)
	if rv == nil || rv.ETAMinutes == nil || *rv.ETAMinutes != 0 {
		t.Fatalf("expected clamped eta, got %+v", rv)
	}

	dels[0].ETA = nil
	rv = ToRouteView(routeOrder(), dels, now)
	if rv == nil || rv.ETAMinutes != nil {
		t.Fatalf("expected nil eta minutes, got %+v", rv)
	}
}

func TestToDeliveriesView(t *testing.T) {
	if got := ToDeliveriesView([]dto.DeliveryDto{}); got == nil || len(got) != 0 {
		t.Fatalf("empty in should be empty out, got %#v", got)
	}

	done := now.Add(-time.Minute)
	got := ToDeliveriesView([]dto.DeliveryDto{{ID: "d", Status: "bogus", OrderID: "7", Stops: []dto.StopDto{
		{Sequence: 2, StopType: "DROPOFF"},
		{Sequence: 1, StopType: "PICKUP", CompletedAt: &done},
	}}})
	v := got[0]
	if v.Status != domain.DeliveryPending || v.StopCount != 2 || v.CompletedStops != 1 {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.NextStop == nil || v.NextStop.Type != domain.StopDropoff {
		t.Fatalf("next stop = %+v", v.NextStop)
	}
}

func TestToInventoryView(t *testing.T) {
	low := ToInventoryView(dto.InventoryItemDto{ID: "1", PartNumber: ptr("B-1"), Quantity: 5, Price: ptr(12.5)})
	if !low.InStock || !low.LowStock || low.Name != "B-1" || low.Currency != "USD" {
		t.Fatalf("unexpected %+v", low)
	}

	plenty := ToInventoryView(dto.InventoryItemDto{ID: "2", Name: ptr("Valve"), Quantity: 6, Currency: ptr("eur")})
	if plenty.LowStock || plenty.Currency != "EUR" {
		t.Fatalf("unexpected %+v", plenty)
	}

	custom := ToInventoryView(dto.InventoryItemDto{ID: "3", Quantity: 20, ReorderLevel: ptr(25)})
	if !custom.LowStock {
		t.Fatalf("expected low stock with reorder level 25")
	}

	out := ToInventoryView(dto.InventoryItemDto{ID: "4", Quantity: 0})
	if out.InStock || out.LowStock {
		t.Fatalf("zero quantity should be out of stock, not low: %+v", out)
	}
}

func TestNotificationCategory(t *testing.T) {
	cases := map[string]domain.NotificationCategory{
		"ORDER_MATCHED":       domain.NotificationOrder,
		"order_created":       domain.NotificationOrder,
		"DELIVERY_STARTED":    domain.NotificationSystem,
		"ORDER_DELIVERY_ETA":  domain.NotificationOrder,
		"ETA_UPDATED":         domain.NotificationSystem,
		"LOW_STOCK_ALERT":     domain.NotificationWarning,
		"INVENTORY_LOW_STOCK": domain.NotificationWarning,
		"MAINTENANCE":         domain.NotificationSystem,
		"":                    domain.NotificationSystem,
	}
	for in, want := range cases {
		if got := NotificationCategory(in); got != want {
			t.Errorf("NotificationCategory(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestToNotificationView_TitleFallback(t *testing.T) {
	v := ToNotificationView(dto.NotificationDto{ID: "1", EventType: "ORDER_MATCHED", OrderID: "7"})
	if v.Title != "Order matched" || v.Category != domain.NotificationOrder || v.OrderID != "7" {
		t.Fatalf("unexpected %+v", v)
	}
}

func TestHumanizeEventKeepsMultibyteFirstRune(t *testing.T) {
	got := humanizeEvent("ÉTAPE_TERMINÉE")
	if !utf8.ValidString(got) || got != "Étape terminée" {
		t.Fatalf("humanizeEvent = %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		user dto.UserDto
		want string
	}{
		{dto.UserDto{Email: "a@x.io", FactoryName: ptr("Plant A"), BusinessName: ptr("Biz")}, "Plant A"},
		{dto.UserDto{Email: "a@x.io", FactoryName: ptr("  "), BusinessName: ptr("Biz")}, "Biz"},
		{dto.UserDto{Email: "jane.doe@x.io"}, "jane.doe"},
		{dto.UserDto{}, ""},
	}
	for _, c := range cases {
		if got := DisplayName(c.user); got != c.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", c.user, got, c.want)
		}
	}
}

func TestToSessionUser(t *testing.T) {
	u := ToSessionUser(dto.UserDto{ID: "5", Email: "s@x.io", Role: "SUPPLIER", BusinessName: ptr("Acme"), Latitude: ptr(1.0), Longitude: ptr(2.0)})
	want := domain.SessionUser{
		ID:           "5",
		Email:        "s@x.io",
		Role:         domain.RoleSupplier,
		DisplayName:  "Acme",
		BusinessName: "Acme",
		Location:     &domain.GeoPoint{Lat: 1, Lng: 2},
	}
	if diff := cmp.Diff(want, u); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
