package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"inventory-dashboard/journal"
	models "inventory-dashboard/model"
	"inventory-dashboard/service"
	"inventory-dashboard/store"

	"github.com/gorilla/mux"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc    service.ServiceInterface
	logger *slog.Logger
}

// NewHandler returns a Handler instance
func NewHandler(s service.ServiceInterface, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: s, logger: logger}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Products
	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/products", h.CreateProduct).Methods("POST")
	r.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	r.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT")
	r.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")

	// Orders
	r.HandleFunc("/orders", h.ListOrders).Methods("GET")
	r.HandleFunc("/orders", h.CreateOrder).Methods("POST")
	r.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET")
	r.HandleFunc("/orders/{id}", h.UpdateOrder).Methods("PUT")
	r.HandleFunc("/orders/{id}", h.DeleteOrder).Methods("DELETE")
	r.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods("PATCH")
	r.HandleFunc("/orders/{id}/items", h.AddOrderItem).Methods("POST")
	r.HandleFunc("/orders/{id}/items/{productId}", h.RemoveOrderItem).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")

	// Profile
	r.HandleFunc("/user", h.GetUser).Methods("GET")
	r.HandleFunc("/user", h.UpdateUser).Methods("PATCH")
	r.HandleFunc("/settings", h.GetSettings).Methods("GET")
	r.HandleFunc("/settings", h.UpdateSettings).Methods("PATCH")

	// Assistant
	r.HandleFunc("/assistant/description", h.DescribeProduct).Methods("POST")
	r.HandleFunc("/assistant/forecast", h.ForecastStock).Methods("POST")
	r.HandleFunc("/assistant/summary", h.SummarizeOrders).Methods("POST")

	// Activity
	r.HandleFunc("/activity", h.Activity).Methods("GET")
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, errorResp{Error: errCode, Message: msg})
}

// writeServiceErr maps store sentinels to status codes.
func (h *Handler) writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		writeErr(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, store.ErrOrderNotFound):
		writeErr(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, models.ErrInvalidQuantity):
		writeErr(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeErr(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// --- products ---

// ListProducts handles GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListProducts(r.Context()))
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.CreateProduct(r.Context(), req.toNew()))
}

// GetProduct handles GET /products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProduct handles PUT /products/{id}; the body replaces the product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	p := req.toNew().WithID(mux.Vars(r)["id"])
	if err := h.svc.UpdateProduct(r.Context(), p); err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /products/{id}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- orders ---

// ListOrders handles GET /orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListOrders(r.Context()))
}

// CreateOrder handles POST /orders
// body: { "customer_name": "...", "date": "2024-07-22", "status": "Pending", "items": [...] }
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderReq
	if !decode(w, r, &req) {
		return
	}
	no, ok := h.parseOrder(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.CreateOrder(r.Context(), no))
}

// GetOrder handles GET /orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// UpdateOrder handles PUT /orders/{id}. Any total in the body is ignored.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderReq
	if !decode(w, r, &req) {
		return
	}
	no, ok := h.parseOrder(w, req)
	if !ok {
		return
	}
	o, err := h.svc.UpdateOrder(r.Context(), no.Build(mux.Vars(r)["id"]))
	if err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// DeleteOrder handles DELETE /orders/{id}
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /orders/{id}/status
// body: { "status": "Shipped" }
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if !decode(w, r, &req) {
		return
	}
	if req.Status == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "status is required")
		return
	}
	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}
	o, err := h.svc.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// AddOrderItem handles POST /orders/{id}/items
// body: { "product_id": "p1", "quantity": 2 }
func (h *Handler) AddOrderItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if !decode(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}
	v, err := h.svc.AddOrderItem(r.Context(), mux.Vars(r)["id"], req.ProductID, req.Quantity)
	if err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// RemoveOrderItem handles DELETE /orders/{id}/items/{productId}
func (h *Handler) RemoveOrderItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	v, err := h.svc.RemoveOrderItem(r.Context(), vars["id"], vars["productId"])
	if err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) parseOrder(w http.ResponseWriter, req orderReq) (models.NewOrder, bool) {
	if req.CustomerName == "" || req.Date == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "customer_name and date are required")
		return models.NewOrder{}, false
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_date", err.Error())
		return models.NewOrder{}, false
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_status", err.Error())
		return models.NewOrder{}, false
	}
	for _, it := range req.Items {
		if it.ProductID == "" {
			writeErr(w, http.StatusBadRequest, "invalid_item", "product_id is required for every item")
			return models.NewOrder{}, false
		}
	}
	return models.NewOrder{CustomerName: req.CustomerName, Date: date, Status: status, Items: req.items()}, true
}

// --- dashboard ---

// Dashboard handles GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Dashboard(r.Context()))
}

// --- profile ---

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.User(r.Context()))
}

// UpdateUser handles PATCH /user; only the fields present change.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if !decode(w, r, &patch) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.UpdateUser(r.Context(), patch))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings(r.Context()))
}

// UpdateSettings handles PATCH /settings
// body: { "notifications": { "low_stock": true } }
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if !decode(w, r, &patch) {
		return
	}
	if patch.Theme != nil && !patch.Theme.Valid() {
		writeErr(w, http.StatusBadRequest, "invalid_theme", "theme must be light or dark")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.UpdateSettings(r.Context(), patch))
}

// --- assistant ---

// DescribeProduct handles POST /assistant/description
// body: { "product_name": "...", "keywords": "..." }
func (h *Handler) DescribeProduct(w http.ResponseWriter, r *http.Request) {
	var req descriptionReq
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, textResp{Text: h.svc.DescribeProduct(r.Context(), req.ProductName, req.Keywords)})
}

// ForecastStock handles POST /assistant/forecast
func (h *Handler) ForecastStock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, textResp{Text: h.svc.ForecastStock(r.Context())})
}

// SummarizeOrders handles POST /assistant/summary
func (h *Handler) SummarizeOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, textResp{Text: h.svc.SummarizeOrders(r.Context())})
}

// --- activity ---

// Activity handles GET /activity?limit=N
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	limit := journal.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}
	entries, err := h.svc.Activity(r.Context(), limit)
	if err != nil {
		h.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
