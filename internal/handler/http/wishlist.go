package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	session *session.Session
	logger  *slog.Logger
}

// NewWishlistHandler creates a wishlist handler.
func NewWishlistHandler(s *session.Session, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{session: s, logger: logger}
}

// AddWishlistItemRequest is the body of POST /api/v1/wishlist/items.
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Get handles GET /api/v1/wishlist
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.session.Wishlist().Snapshot())
}

// Add handles POST /api/v1/wishlist/items. Adding a saved product is a
// no-op.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, badRequestUnlessValidation(err), h.logger)
		return
	}

	if _, err := h.session.AddToWishlist(r.Context(), req.ProductID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.session.Wishlist().Snapshot())
}

// Contains handles GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	httputil.WriteData(w, http.StatusOK, membership{ProductID: id, Saved: h.session.Wishlist().Contains(id)})
}

// Toggle handles POST /api/v1/wishlist/items/{productId}/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	saved, err := h.session.ToggleWishlist(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, membership{ProductID: id, Saved: saved})
}

// Remove handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.session.Wishlist().Remove(h.session.Scope(r.Context()), chi.URLParam(r, "productId"))
	httputil.WriteData(w, http.StatusOK, h.session.Wishlist().Snapshot())
}

// Clear handles DELETE /api/v1/wishlist
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.session.Wishlist().Clear(h.session.Scope(r.Context()))
	httputil.WriteData(w, http.StatusOK, h.session.Wishlist().Snapshot())
}
