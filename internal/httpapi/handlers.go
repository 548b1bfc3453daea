package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonZhuravskiy/web-larek/internal/checkout"
	"github.com/AntonZhuravskiy/web-larek/internal/storefront"
)

// Handler exposes the storefront over JSON/HTTP. It is the Go stand-in for
// the presentation layer: it forwards input into the core's mutators and
// renders snapshots and validation state back out.
type Handler struct {
	svc *storefront.Service
}

func NewHandler(svc *storefront.Service) *Handler {
	return &Handler{svc: svc}
}

type deliveryRequestDTO struct {
	Payment string `json:"payment"`
	Address string `json:"address"`
}

type contactsRequestDTO struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type addItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type checkoutStateDTO struct {
	Delivery checkout.GroupResult `json:"delivery"`
	Contacts checkout.GroupResult `json:"contacts"`
}

type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code,omitempty"`
	Fields checkout.FormErrors `json:"fields,omitempty"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.svc.Products()
	respondJSON(w, http.StatusOK, map[string]any{
		"total": len(products),
		"items": products,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.svc.Product(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Cart())
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	snap, err := h.svc.AddToCart(req.ProductID)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	respondJSON(w, http.StatusOK, h.svc.RemoveFromCart(id))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.ClearCart())
}

// SetDelivery applies the delivery-step fields and returns the group's
// validation result, so the client can enable or disable its next-step
// control off the response.
func (h *Handler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session := h.svc.Session()
	method, _ := checkout.ParsePaymentMethod(req.Payment)
	session.SetPayment(method)
	session.SetAddress(req.Address)

	respondJSON(w, http.StatusOK, session.ValidateDelivery())
}

// SetContacts applies the contacts-step fields and returns the group's
// validation result.
func (h *Handler) SetContacts(w http.ResponseWriter, r *http.Request) {
	var req contactsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session := h.svc.Session()
	session.SetEmail(req.Email)
	session.SetPhone(req.Phone)

	respondJSON(w, http.StatusOK, session.ValidateContacts())
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	session := h.svc.Session()
	respondJSON(w, http.StatusOK, checkoutStateDTO{
		Delivery: session.ValidateDelivery(),
		Contacts: session.ValidateContacts(),
	})
}

// SubmitOrder drives the final submission. Validation problems come back as
// 422 with the per-field error map; a sink failure comes back as 502 so the
// client never tells the user to fix a field when the transport was at
// fault.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Submit(r.Context())
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", "cart is empty")
	case errors.Is(err, checkout.ErrIncompleteOrder):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "order form is incomplete",
			Code:   "incomplete_order",
			Fields: h.svc.Session().Errors(),
		})
	case errors.Is(err, storefront.ErrSubmissionFailed):
		respondError(w, http.StatusBadGateway, "submission_failed", "order could not be submitted")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	default:
		respondJSON(w, http.StatusCreated, result)
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}
