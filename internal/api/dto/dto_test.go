package dto

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestIDDecodesNumbersAndStrings(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}

	if err := json.Unmarshal([]byte(`{"a":7,"b":"ord-9","c":null}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.A != "7" || v.B != "ord-9" || v.C != "" {
		t.Fatalf("got %+v", v)
	}
}

func TestOrderDtoValidate(t *testing.T) {
	var o OrderDto
	raw := `{"id":7,"status":"matched","items":[{"part_number":"X1","assignments":[{"id":9,"status":"PROPOSED"}]}]}`
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := o.Validate(); err != nil {
		t.Fatalf("expected valid order, got %v", err)
	}

	o.Items[0].Assignments[0].Status = "MAYBE"
	err := o.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "order.items[0].assignments[0].status" {
		t.Fatalf("field = %q", ve.Field)
	}

	o.Items[0].Assignments[0].Status = "ACCEPTED"
	o.Status = " MATCHED\t"
	if err := o.Validate(); err != nil {
		t.Fatalf("padded status should be accepted, got %v", err)
	}

	o.Status = "LOST"
	if err := o.Validate(); err == nil {
		t.Fatal("expected unknown order status to fail")
	}
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates(" 33.4484 ", "-112.0740")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Latitude != 33.4484 || c.Longitude != -112.074 {
		t.Fatalf("got %+v", c)
	}

	tests := []struct {
		lat, lng, field string
	}{
		{"north", "1", "latitude"},
		{"1", "", "longitude"},
		{"95", "1", "latitude"},
		{"1", "200", "longitude"},
	}
	for _, tc := range tests {
		_, err := ParseCoordinates(tc.lat, tc.lng)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Errorf("ParseCoordinates(%q, %q) err = %v, want field %s", tc.lat, tc.lng, err, tc.field)
		}
	}
}

func TestCreateOrderRequestValidate(t *testing.T) {
	ok := CreateOrderRequest{
		Urgency:         "critical",
		DeliveryAddress: "1901 W Madison St, Phoenix, AZ",
		Items:           []CreateOrderItem{{PartNumber: "BRG-6204", Quantity: 2}},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noItems := ok
	noItems.Items = nil
	if err := noItems.Validate(); err == nil {
		t.Error("expected error for missing items")
	}

	badQty := ok
	badQty.Items = []CreateOrderItem{{PartNumber: "BRG-6204", Quantity: 0}}
	if err := badQty.Validate(); err == nil {
		t.Error("expected error for zero quantity")
	}

	lat := 33.0
	halfCoords := ok
	halfCoords.Latitude = &lat
	if err := halfCoords.Validate(); err == nil {
		t.Error("expected error for latitude without longitude")
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	req := RegisterRequest{Email: "ops@plant.example", Password: "s3cret", Role: "buyer"}
	if err := req.Validate(); err == nil {
		t.Fatal("buyer without factory name should fail")
	}

	req.FactoryName = "Plant 4"
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.Role = "admin"
	if err := req.Validate(); err == nil {
		t.Fatal("self-registration as admin should fail")
	}
}

func TestAuthResponseToken(t *testing.T) {
	var r AuthResponse
	if err := json.Unmarshal([]byte(`{"access_token":"abc","user":{"id":1,"email":"a@b.c","role":"buyer"}}`), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.AuthToken() != "abc" {
		t.Fatalf("token = %q", r.AuthToken())
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
