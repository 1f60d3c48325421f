package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/discovery"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/httputil"
)

// ProductHandler serves catalog reads.
type ProductHandler struct {
	session *session.Session
	logger  *slog.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(s *session.Session, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{session: s, logger: logger}
}

// List handles GET /api/v1/products. The filter comes entirely from the
// query string; the session's browse state is not touched.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.session.Search(r.Context(), f))
}

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.session.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, productView{
		Product:  p,
		Saved:    h.session.Wishlist().Contains(p.ID),
		Price:    p.EffectivePrice(),
		Variants: p.HasVariants(),
	})
}

// Recommended handles GET /api/v1/products/{id}/recommended
func (h *ProductHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	count, err := httputil.QueryInt(r, "count", catalog.HighlightCount)
	if err != nil {
		httputil.WriteBadRequest(w, r, err)
		return
	}
	if count < 1 || count > maxRecommendations {
		httputil.WriteBadRequest(w, r, errCount)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.session.Recommended(r.Context(), chi.URLParam(r, "id"), count))
}

// Home handles GET /api/v1/home
func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.session.Home(r.Context(), catalog.HighlightCount))
}

func filterFromQuery(r *http.Request) (discovery.Filter, error) {
	f := discovery.DefaultFilter()
	q := r.URL.Query()

	f.Search = q.Get("search")
	f.Categories = httputil.QueryList(r, "category")
	if f.Categories == nil {
		f.Categories = []string{}
	}

	var err error
	if f.Price.Min, err = httputil.QueryDecimal(r, "min_price", f.Price.Min); err != nil {
		return f, badRequest(err)
	}
	if f.Price.Max, err = httputil.QueryDecimal(r, "max_price", f.Price.Max); err != nil {
		return f, badRequest(err)
	}
	if err := f.Price.Validate(); err != nil {
		return f, err
	}
	if f.Sort, err = discovery.ParseSortKey(q.Get("sort")); err != nil {
		return f, err
	}
	if f.Page, err = httputil.QueryInt(r, "page", 1); err != nil {
		return f, badRequest(err)
	}
	return f, nil
}
