package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/ports"
	"parts-matching-client/internal/services"
)

// ViewHandler serves adapted view models. The caller's bearer token reaches
// the backend through the request context.
type ViewHandler struct {
	Backend ports.Marketplace
	Now     func() time.Time
}

func (h *ViewHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *ViewHandler) Me(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	u, err := h.Backend.Me(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, services.ToSessionUser(u))
}

// Orders lists orders (GET) or places one (POST).
func (h *ViewHandler) Orders(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodPost {
		h.createOrder(w, r)
		return
	}

	q := r.URL.Query()
	filter := dto.OrderFilter{Urgency: q.Get("urgency")}
	for _, s := range q["status"] {
		filter.Status = append(filter.Status, strings.Split(s, ",")...)
	}
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "active must be a boolean")
			return
		}
		filter.Active = active
	}

	orders, err := h.Backend.ListOrders(r.Context(), filter)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	views := services.ToOrdersView(orders)
	if filter.Active {
		active := views[:0]
		for _, v := range views {
			if v.Status.IsActive() {
				active = append(active, v)
			}
		}
		views = active
	}
	writeJSON(w, r, http.StatusOK, dto.ListOrdersResponse{Orders: views})
}

func (h *ViewHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.Backend.CreateOrder(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, services.ToOrderView(o))
}

func (h *ViewHandler) Order(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "order id is required")
		return
	}

	detail, err := services.LoadOrderDetail(r.Context(), h.Backend, h.Backend, id, h.now)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (h *ViewHandler) Deliveries(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	dels, err := h.Backend.ListDeliveries(r.Context(), dto.DeliveryFilter{
		OrderID: q.Get("order_id"),
		Status:  q.Get("status"),
	})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListDeliveriesResponse{Deliveries: services.ToDeliveriesView(dels)})
}

func (h *ViewHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	items, err := h.Backend.ListInventory(r.Context(), dto.InventoryFilter{
		Query:      q.Get("q"),
		SupplierID: q.Get("supplier_id"),
		Category:   q.Get("category"),
	})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListInventoryResponse{Items: services.ToInventoryViews(items)})
}

func (h *ViewHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	ns, err := h.Backend.ListNotifications(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	views := services.ToNotificationViews(ns)
	writeJSON(w, r, http.StatusOK, dto.ListNotificationsResponse{
		Notifications: views,
		Unread:        services.UnreadCount(views),
	})
}

type markReadRequest struct {
	ID  string `json:"id"`
	All bool   `json:"all"`
}

// MarkRead marks one notification ({"id": ...}) or all of them
// ({"all": true}) as read.
func (h *ViewHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req markReadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := strings.TrimSpace(req.ID)
	var err error
	switch {
	case req.All && id == "":
		err = h.Backend.MarkAllNotificationsRead(r.Context())
	case !req.All && id != "":
		err = h.Backend.MarkNotificationRead(r.Context(), id)
	default:
		writeError(w, r, http.StatusBadRequest, "exactly one of id or all is required")
		return
	}
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
