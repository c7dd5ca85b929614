// Package rest exposes the product and order cache coordinators over HTTP.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/sony/gobreaker/v2"
)

type Handler struct {
	products service.ProductService
	orders   service.OrderService
	validate *validator.Validate
	apiKey   string
	logger   *slog.Logger
}

// NewHandler creates a Handler. Every /api/v1 route requires the X-API-Key header to equal apiKey.
func NewHandler(products service.ProductService, orders service.OrderService, apiKey string, logger *slog.Logger) *Handler {
	return &Handler{
		products: products,
		orders:   orders,
		validate: NewValidator(),
		apiKey:   apiKey,
		logger:   logger.With("component", "rest"),
	}
}

// NewValidator returns a validator that reports json field names and knows the notblank rule.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// RegisterRoutes registers the HTTP routes for products and orders.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(web.APIKeyMiddleware(h.apiKey, h.logger))
		r.Route("/api/v1/products", func(r chi.Router) {
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.FindProductByID)
		})
		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", h.FindAllOrders)
			r.Post("/", h.CreateOrder)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindOrderByID)
				r.Put("/", h.UpdateOrder)
				r.Delete("/", h.DeleteOrder)
			})
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeAndValidate reads the JSON body into dst and validates it.
// On failure it writes 400 for a malformed body or 422 for a validation failure and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		if web.RespondValidationError(w, h.logger, err) {
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "error", err)
			return false
		}
		h.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondServiceError maps coordinator errors to HTTP statuses.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, catalogerrors.ErrEntityNotFound):
		h.logger.WarnContext(r.Context(), "Entity not found", "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusNotFound, err.Error())
	case errors.Is(err, catalogerrors.ErrBusinessRule):
		h.logger.WarnContext(r.Context(), "Business rule violated", "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusConflict, err.Error())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		h.logger.ErrorContext(r.Context(), "Store unavailable", "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusServiceUnavailable, "Service is temporarily unavailable")
	default:
		h.logger.ErrorContext(r.Context(), "Unexpected error", "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to "+action)
	}
}
