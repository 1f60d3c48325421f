package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	session *session.Session
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(s *session.Session, logger *slog.Logger) *CartHandler {
	return &CartHandler{session: s, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
// Quantity defaults to 1.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// UpdateQuantityRequest sets a line quantity. Zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"max=99"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.session.Cart().Snapshot())
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, badRequestUnlessValidation(err), h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sel := domain.Selection{Color: req.Color, Size: req.Size}
	if _, err := h.session.AddToCart(r.Context(), req.ProductID, req.Quantity, sel); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.session.Cart().Snapshot())
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, badRequestUnlessValidation(err), h.logger)
		return
	}

	h.session.Cart().SetQuantity(h.session.Scope(r.Context()), chi.URLParam(r, "productId"), req.Quantity)
	httputil.WriteData(w, http.StatusOK, h.session.Cart().Snapshot())
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.session.Cart().RemoveItem(h.session.Scope(r.Context()), chi.URLParam(r, "productId"))
	httputil.WriteData(w, http.StatusOK, h.session.Cart().Snapshot())
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.session.Cart().Clear(h.session.Scope(r.Context()))
	httputil.WriteData(w, http.StatusOK, h.session.Cart().Snapshot())
}

// ToggleOpen handles POST /api/v1/cart/toggle
func (h *CartHandler) ToggleOpen(w http.ResponseWriter, r *http.Request) {
	h.session.Cart().ToggleOpen()
	httputil.WriteData(w, http.StatusOK, h.session.Cart().Snapshot())
}
