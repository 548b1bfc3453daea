package catalogd

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonZhuravskiy/web-larek/internal/checkout"
)

// Handler is the catalog server's HTTP surface: the product list the
// storefront fetches at startup, and the order endpoint it submits to.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type orderResponseDTO struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}

type errorResponseDTO struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		slog.Error("list products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total": len(products),
		"items": products,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.svc.GetProduct(r.Context(), id)
	if errors.Is(err, ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		slog.Error("get product failed", "product_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var payload checkout.OrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.svc.PlaceOrder(r.Context(), payload)
	switch {
	case errors.Is(err, ErrEmptyOrder):
		respondError(w, http.StatusBadRequest, "empty_order", err.Error())
	case errors.Is(err, ErrInvalidOrderFields),
		errors.Is(err, ErrUnsellableProduct),
		errors.Is(err, ErrTotalTooLow),
		errors.Is(err, ErrProductNotFound):
		respondError(w, http.StatusBadRequest, "invalid_order", err.Error())
	case err != nil:
		slog.Error("place order failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
	default:
		respondJSON(w, http.StatusCreated, orderResponseDTO{ID: order.ID, Total: order.Total})
	}
}

// NewRouter builds the catalog server's routes.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
	r.Post("/order", h.CreateOrder)

	return r
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponseDTO{Error: message, Code: code})
}
