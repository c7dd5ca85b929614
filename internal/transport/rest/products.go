package rest

import (
	"net/http"

	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/pkg/web"
)

// CreateProduct handles POST /api/v1/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto service.ProductCreateDto
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	created, err := h.products.Create(r.Context(), dto)
	if err != nil {
		h.respondServiceError(w, r, err, "create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// FindProductByID handles GET /api/v1/products/{id}.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	found, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "retrieve product")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}
