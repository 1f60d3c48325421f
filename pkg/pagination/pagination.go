package pagination

import (
	"math"
	"net/http"
	"strconv"
)

// Params holds 1-based pagination parameters.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// New builds Params for the given page and page size. The page is kept as
// given, so out-of-range pages produce an empty slice rather than a clamp.
// An offset that would overflow int saturates at math.MaxInt.
func New(page, perPage int) Params {
	if perPage < 1 {
		perPage = 1
	}
	return Params{
		Page:    page,
		PerPage: perPage,
		Offset:  offset(page, perPage),
	}
}

func offset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// PageFromRequest reads the "page" query parameter. Missing or invalid
// values fall back to 1.
func PageFromRequest(r *http.Request) int {
	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			return v
		}
	}
	return 1
}

// TotalPages returns ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if perPage < 1 || total < 1 {
		return 0
	}
	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	return pages
}

// Slice returns the items on the requested page. Pages below 1 or past the
// last page yield an empty, non-nil slice.
func Slice[T any](items []T, p Params) []T {
	if p.Page < 1 || p.Offset < 0 || p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.PerPage < end-p.Offset {
		end = p.Offset + p.PerPage
	}
	out := make([]T, end-p.Offset)
	copy(out, items[p.Offset:end])
	return out
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult creates a paginated result for an already sliced page.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := TotalPages(totalCount, params.PerPage)
	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page >= 1 && params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Paginate slices items to the requested page and wraps the result.
func Paginate[T any](items []T, params Params) Result[T] {
	return NewResult(Slice(items, params), len(items), params)
}
