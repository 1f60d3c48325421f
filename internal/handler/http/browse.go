package http

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/discovery"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// BrowseHandler serves the session's browse page and its filter controls.
type BrowseHandler struct {
	session *session.Session
	logger  *slog.Logger
}

// NewBrowseHandler creates a browse handler.
func NewBrowseHandler(s *session.Session, logger *slog.Logger) *BrowseHandler {
	return &BrowseHandler{session: s, logger: logger}
}

// UpdateBrowseRequest changes part of the browse filter. Absent fields are
// left as they are. Search and price are debounced.
type UpdateBrowseRequest struct {
	Search   *string          `json:"search" validate:"omitempty,max=200"`
	MinPrice *decimal.Decimal `json:"min_price"`
	MaxPrice *decimal.Decimal `json:"max_price"`
	Sort     *string          `json:"sort"`
	Page     *int             `json:"page" validate:"omitempty,min=1"`
	View     *string          `json:"view"`
}

// ToggleCategoryRequest is the body of POST /api/v1/browse/categories/toggle.
type ToggleCategoryRequest struct {
	Category string `json:"category" validate:"required,max=100"`
}

// Get handles GET /api/v1/browse. With ?flush=true pending search and price
// input is applied first.
func (h *BrowseHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("flush") == "true" {
		h.session.Filter().Flush()
	}
	httputil.WriteJSON(w, http.StatusOK, h.session.Browse(r.Context()))
}

// Update handles PATCH /api/v1/browse. The request is validated as a whole
// before anything is applied.
func (h *BrowseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBrowseRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, badRequestUnlessValidation(err), h.logger)
		return
	}

	ctl := h.session.Filter()

	var (
		sortKey discovery.SortKey
		view    discovery.ViewMode
		err     error
	)
	if req.Sort != nil {
		if sortKey, err = discovery.ParseSortKey(*req.Sort); err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}
	if req.View != nil {
		if view, err = discovery.ParseViewMode(*req.View); err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}

	price := ctl.Raw().Price
	priceChanged := req.MinPrice != nil || req.MaxPrice != nil
	if req.MinPrice != nil {
		price.Min = *req.MinPrice
	}
	if req.MaxPrice != nil {
		price.Max = *req.MaxPrice
	}
	if priceChanged {
		if err := price.Validate(); err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}

	if req.Search != nil {
		ctl.SetSearch(*req.Search)
	}
	if priceChanged {
		// Validated above.
		_ = ctl.SetPriceRange(price)
	}
	if req.Sort != nil {
		ctl.SetSort(sortKey)
	}
	if req.View != nil {
		ctl.SetView(view)
	}
	if req.Page != nil {
		_ = ctl.SetPage(*req.Page)
	}

	h.logger.DebugContext(r.Context(), "browse filter updated", slog.Bool("pending", ctl.Pending()))
	httputil.WriteJSON(w, http.StatusOK, h.session.Browse(r.Context()))
}

// ToggleCategory handles POST /api/v1/browse/categories/toggle
func (h *BrowseHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	var req ToggleCategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, badRequestUnlessValidation(err), h.logger)
		return
	}

	h.session.Filter().ToggleCategory(req.Category)
	httputil.WriteJSON(w, http.StatusOK, h.session.Browse(r.Context()))
}

// Reset handles POST /api/v1/browse/reset
func (h *BrowseHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session.Filter().Reset()
	httputil.WriteJSON(w, http.StatusOK, h.session.Browse(r.Context()))
}
