package api

import (
	"net/http"

	"parts-matching-client/internal/api/handlers"
	"parts-matching-client/internal/platform/metrics"
	"parts-matching-client/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(backend ports.Marketplace) http.Handler {
	mux := http.NewServeMux()

	views := &handlers.ViewHandler{Backend: backend}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/views/me", views.Me)
	mux.HandleFunc("/views/orders", views.Orders)
	mux.HandleFunc("/views/orders/{id}", views.Order)
	mux.HandleFunc("/views/deliveries", views.Deliveries)
	mux.HandleFunc("/views/inventory", views.Inventory)
	mux.HandleFunc("/views/notifications", views.Notifications)
	mux.HandleFunc("/views/notifications/read", views.MarkRead)

	return requestContext(loggingMiddleware(mux))
}
