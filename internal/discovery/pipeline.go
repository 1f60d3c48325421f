package discovery

import (
	"slices"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/pagination"
)

// Apply runs search, price, category, sort and pagination over products and
// returns the requested page. products is never modified.
func Apply(products []domain.Product, f Filter) pagination.Result[domain.Product] {
	matched := Match(products, f)
	Sort(matched, f.Sort)
	return pagination.Paginate(matched, pagination.New(f.Page, PageSize))
}

// Match returns a new slice with the products passing the search, price and
// category stages, in input order.
func Match(products []domain.Product, f Filter) []domain.Product {
	query := strings.ToLower(f.Search)

	matched := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if !matchesSearch(p, query) {
			continue
		}
		if !f.Price.Contains(p.EffectivePrice()) {
			continue
		}
		if !matchesCategory(f.Categories, p.Category) {
			continue
		}
		matched = append(matched, *p)
	}
	return matched
}

// matchesSearch is a case-insensitive substring match on name or category.
func matchesSearch(p *domain.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// Sort orders products in place. Every ordering is stable. Unknown keys
// order as SortFeatured, which lists best sellers after everything else.
func Sort(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return a.EffectivePrice().Cmp(b.EffectivePrice())
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.EffectivePrice().Cmp(a.EffectivePrice())
		})
	case SortNewest:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return boolRank(b.IsNew) - boolRank(a.IsNew)
		})
	default:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return boolRank(a.IsBestSeller) - boolRank(b.IsBestSeller)
		})
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
