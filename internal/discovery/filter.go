// Package discovery derives the visible product page from a catalog snapshot
// and the browse filter state.
package discovery

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// PageSize is the number of products on a browse page.
const PageSize = 12

// DefaultMaxPrice is the upper bound of the default price range.
var DefaultMaxPrice = decimal.NewFromInt(1000)

// SortKey selects the result ordering.
type SortKey string

// Sort options.
const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// ValidSortKeys returns the accepted sort keys.
func ValidSortKeys() []SortKey {
	return []SortKey{SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc}
}

// ParseSortKey validates s. An empty string selects the default.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortFeatured, nil
	}
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(ValidSortKeys(), k) {
		return "", apperrors.InvalidInput(fmt.Sprintf("unknown sort %q", s))
	}
	return k, nil
}

// ViewMode is the presentation layout of the product list.
type ViewMode string

// View modes.
const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode validates s. An empty string selects grid.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewGrid:
		return ViewGrid, nil
	case ViewList:
		return ViewList, nil
	default:
		return "", apperrors.InvalidInput(fmt.Sprintf("unknown view %q", s))
	}
}

// PriceRange is an inclusive bound on the effective price.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// DefaultPriceRange is 0..1000.
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: decimal.Zero, Max: DefaultMaxPrice}
}

// Validate requires 0 <= min <= max.
func (r PriceRange) Validate() error {
	if r.Min.IsNegative() {
		return apperrors.InvalidInput("min price must not be negative")
	}
	if r.Min.GreaterThan(r.Max) {
		return apperrors.InvalidInput("min price must not exceed max price")
	}
	return nil
}

// Contains reports whether price lies within the range.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Narrowed reports whether the range excludes part of the default range.
func (r PriceRange) Narrowed() bool {
	return r.Min.IsPositive() || r.Max.LessThan(DefaultMaxPrice)
}

// Equal compares two ranges by value.
func (r PriceRange) Equal(o PriceRange) bool {
	return r.Min.Equal(o.Min) && r.Max.Equal(o.Max)
}

// Filter is the browse state applied to a catalog snapshot.
type Filter struct {
	Search     string     `json:"search"`
	Price      PriceRange `json:"price"`
	Categories []string   `json:"categories"`
	Sort       SortKey    `json:"sort"`
	Page       int        `json:"page"`
	View       ViewMode   `json:"view"`
}

// DefaultFilter returns the initial browse state.
func DefaultFilter() Filter {
	return Filter{
		Price:      DefaultPriceRange(),
		Categories: []string{},
		Sort:       SortFeatured,
		Page:       1,
		View:       ViewGrid,
	}
}

// Active reports whether any narrowing filter is applied, which is when the
// browse page shows its active filter chips.
func (f Filter) Active() bool {
	return len(f.Categories) > 0 || f.Search != "" || f.Price.Narrowed()
}

// Equal compares two filters by value.
func (f Filter) Equal(o Filter) bool {
	return f.Search == o.Search &&
		f.Price.Equal(o.Price) &&
		slices.Equal(f.Categories, o.Categories) &&
		f.Sort == o.Sort &&
		f.Page == o.Page &&
		f.View == o.View
}

func (f Filter) clone() Filter {
	f.Categories = slices.Clone(f.Categories)
	if f.Categories == nil {
		f.Categories = []string{}
	}
	return f
}
