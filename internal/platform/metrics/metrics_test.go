package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveBackendCall(t *testing.T) {
	before := testutil.ToFloat64(backendCalls.WithLabelValues("GET", "network_error"))
	ObserveBackendCall("GET", 0)
	after := testutil.ToFloat64(backendCalls.WithLabelValues("GET", "network_error"))

	if after-before != 1 {
		t.Fatalf("network_error counter delta = %v, want 1", after-before)
	}
}

func TestHandlerExposesViewServerMetrics(t *testing.T) {
	ObserveHTTP(http.MethodGet, "/views/orders", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "parts_client_http_requests_total") {
		t.Fatal("expected http request counter in exposition")
	}
}
