package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"parts-matching-client/internal/adapters/backend"
	"parts-matching-client/internal/adapters/transport"
	"parts-matching-client/internal/api/dto"
)

// fakeUpstream is a minimal marketplace backend recording the tokens it sees.
type fakeUpstream struct {
	mu     sync.Mutex
	tokens []string
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.tokens = append(f.tokens, r.Header.Get("Authorization"))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/auth/me":
		io.WriteString(w, `{"id":1,"email":"ops@plant.io","role":"buyer","factory_name":"Plant 4"}`)
	case r.URL.Path == "/api/orders" && r.Method == http.MethodGet:
		io.WriteString(w, `[{"id":7,"status":"MATCHED","urgency":"critical","items":[{"part_number":"X1","assignments":[{"id":9,"status":"PROPOSED","supplier_business_name":"Acme"}]}]},{"id":8,"status":"DELIVERED"}]`)
	case r.URL.Path == "/api/orders" && r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":11,"status":"PENDING","urgency":"urgent","items":[{"part_number":"B2"}]}`)
	case r.URL.Path == "/api/orders/7":
		io.WriteString(w, `{"id":7,"status":"IN_TRANSIT","items":[{"part_number":"X1","assignments":[{"id":9,"status":"ACCEPTED"}]}]}`)
	case r.URL.Path == "/api/orders/404":
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Order not found","trace_id":"t-1"}`)
	case r.URL.Path == "/api/deliveries":
		io.WriteString(w, `{"deliveries":[{"id":"d1","status":"IN_TRANSIT","stops":[{"sequence":1,"stop_type":"PICKUP","assignment_id":9},{"sequence":2,"stop_type":"DROPOFF","assignment_id":9}]}]}`)
	case r.URL.Path == "/api/inventory":
		io.WriteString(w, `{"items":[{"id":1,"part_number":"X1","quantity":2}]}`)
	case r.URL.Path == "/api/notifications":
		io.WriteString(w, `[{"id":1,"event_type":"ORDER_MATCHED","is_read":false},{"id":2,"event_type":"LOW_STOCK","is_read":true}]`)
	case strings.HasPrefix(r.URL.Path, "/api/notifications/"):
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeUpstream) {
	t.Helper()

	up := &fakeUpstream{}
	upstream := httptest.NewServer(up)
	t.Cleanup(upstream.Close)

	tc, err := transport.NewClient(transport.Config{BaseURL: upstream.URL}, nil)
	if err != nil {
		t.Fatalf("transport: %v", err)
	}

	srv := httptest.NewServer(NewRouter(backend.New(tc)))
	t.Cleanup(srv.Close)
	return srv, up
}

func get(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	req.Header.Set("Authorization", "Bearer user-token")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	resp := get(t, srv, "/health", &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("status=%d body=%v", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID")
	}
}

func TestOrdersViewForwardsTokenAndAdapts(t *testing.T) {
	srv, up := newTestServer(t)

	var body dto.ListOrdersResponse
	resp := get(t, srv, "/views/orders?active=true", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(body.Orders) != 1 {
		t.Fatalf("expected delivered order to be filtered, got %+v", body.Orders)
	}
	o := body.Orders[0]
	if o.OrderID != "7" || o.SupplierName != "Acme" || o.PartName != "X1" {
		t.Fatalf("unexpected view %+v", o)
	}

	up.mu.Lock()
	defer up.mu.Unlock()
	if len(up.tokens) == 0 || up.tokens[0] != "Bearer user-token" {
		t.Fatalf("token not forwarded: %v", up.tokens)
	}
}

func TestOrderDetailView(t *testing.T) {
	srv, _ := newTestServer(t)

	var body struct {
		Order struct {
			OrderID string `json:"orderId"`
		} `json:"order"`
		Route *struct {
			DeliveryID string `json:"deliveryId"`
		} `json:"route"`
	}
	resp := get(t, srv, "/views/orders/7", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body.Order.OrderID != "7" || body.Route == nil || body.Route.DeliveryID != "d1" {
		t.Fatalf("unexpected detail %+v", body)
	}
}

func TestUpstreamStatusPassesThrough(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	resp := get(t, srv, "/views/orders/404", &body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["error"] != "Order not found" || body["trace_id"] != "t-1" {
		t.Fatalf("body = %v", body)
	}
}

func TestNotificationsViewCountsUnread(t *testing.T) {
	srv, _ := newTestServer(t)

	var body dto.ListNotificationsResponse
	get(t, srv, "/views/notifications", &body)
	if len(body.Notifications) != 2 || body.Unread != 1 {
		t.Fatalf("unexpected %+v", body)
	}
	if body.Notifications[1].Category != "WARNING" {
		t.Fatalf("category = %s", body.Notifications[1].Category)
	}
}

func TestMarkRead(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		body string
		want int
	}{
		{`{"id":"1"}`, http.StatusNoContent},
		{`{"all":true}`, http.StatusNoContent},
		{`{}`, http.StatusBadRequest},
		{`{"id":"1","all":true}`, http.StatusBadRequest},
		{`{"nope":1}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		resp, err := http.Post(srv.URL+"/views/notifications/read", "application/json", strings.NewReader(c.body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != c.want {
			t.Errorf("%s: status = %d, want %d", c.body, resp.StatusCode, c.want)
		}
	}
}

func TestCreateOrderValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/views/orders", "application/json", strings.NewReader(`{"delivery_address":"Plant 4","items":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/views/orders", "application/json", strings.NewReader(`{"delivery_address":"Plant 4","urgency":"urgent","items":[{"part_number":"B2","quantity":1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodDelete, srv.URL+"/views/inventory", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed || resp.Header.Get("Allow") != http.MethodGet {
		t.Fatalf("status=%d allow=%q", resp.StatusCode, resp.Header.Get("Allow"))
	}
}

func TestUpstreamDownIsBadGateway(t *testing.T) {
	tc, err := transport.NewClient(transport.Config{BaseURL: "http://127.0.0.1:1"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewRouter(backend.New(tc)))
	defer srv.Close()

	resp := get(t, srv, "/views/inventory", nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
