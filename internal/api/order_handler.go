package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/api/shared"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/store"
)

// OrderHandler handles order intake and admin order-workflow requests.
type OrderHandler struct {
	orders store.OrderStore
}

// NewOrderHandler creates a new OrderHandler with the given dependencies.
func NewOrderHandler(orders store.OrderStore) *OrderHandler {
	return &OrderHandler{
		orders: orders,
	}
}

// Create handles POST /orders, the public order-intake endpoint. The order
// number in the response is minted from an atomic sequence at persistence
// time.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	customer := domain.Customer{
		Name:    req.Customer.Name,
		Email:   req.Customer.Email,
		Phone:   req.Customer.Phone,
		Company: req.Customer.Company,
		Address: req.Customer.Address,
	}
	products := make([]domain.OrderProduct, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, domain.OrderProduct{
			ProductID:      p.ProductID,
			Quantity:       p.Quantity,
			Specifications: p.Specifications,
		})
	}
	services := make([]domain.OrderService, 0, len(req.Services))
	for _, s := range req.Services {
		services = append(services, domain.OrderService{
			ServiceID: s.ServiceID,
			Details:   s.Details,
		})
	}

	order, err := domain.NewOrder(customer, products, services, req.Notes)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid order data: "+err.Error())
		return
	}

	if err := h.orders.Create(r.Context(), order); err != nil {
		HandleAPIError(w, r, err, "Failed to create order")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, order)
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, sort, page := catalog.ParseOrderQuery(r.URL.Query())

	orders, total, err := h.orders.List(r.Context(), filter, sort, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list orders")
		return
	}

	shared.RespondWithList(w, r, orders, total, page.Number, catalog.PageCount(total, page.Size))
}

// Get handles GET /orders/{id}, returning the order with resolved
// line-item names and its full status history.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, order)
}

// UpdateStatus handles PUT /orders/{id}/status, appending an entry to
// the order's status history.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateOrderStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		HandleAPIError(w, r, domain.ErrInvalidStatus, "")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, status, req.Note, user.ID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, order)
}

// Assign handles PUT /orders/{id}/assign. A null assigned_to clears
// the assignment.
func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AssignOrderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	assignee := uuid.Nil
	if req.AssignedTo != nil {
		assignee = *req.AssignedTo
	}

	order, err := h.orders.Assign(r.Context(), id, assignee)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, order)
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Order deleted")
}

// Stats handles GET /orders/stats/overview, the dashboard counters.
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load order stats")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, stats)
}
