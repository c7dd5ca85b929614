package rest

import (
	"net/http"

	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/pkg/web"
)

// CreateOrder handles POST /api/v1/orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var dto service.OrderCreateDto
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	created, err := h.orders.Create(r.Context(), dto)
	if err != nil {
		h.respondServiceError(w, r, err, "create order")
		return
	}
	h.logger.InfoContext(r.Context(), "Order created successfully", "ID", created.ID)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// FindAllOrders handles GET /api/v1/orders.
func (h *Handler) FindAllOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.FindAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "fetch orders")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved order list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindOrderByID handles GET /api/v1/orders/{id}.
func (h *Handler) FindOrderByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	found, err := h.orders.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "retrieve order")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// UpdateOrder handles PUT /api/v1/orders/{id}.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	var dto service.OrderUpdateDto
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	updated, err := h.orders.Update(r.Context(), id, dto)
	if err != nil {
		h.respondServiceError(w, r, err, "update order")
		return
	}
	h.logger.InfoContext(r.Context(), "Order updated successfully", "ID", updated.ID)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.orders.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, "delete order")
		return
	}
	h.logger.InfoContext(r.Context(), "Order deleted successfully", "ID", id)
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"detail": "Order deleted successfully"})
}
