// Package catalog supplies product snapshots from an upstream catalog.
package catalog

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// HighlightCount is the default size of the home page rails and the
// recommendation strip.
const HighlightCount = 4

// Source is a read-only product catalog.
type Source interface {
	// List returns the full browsable catalog.
	List(ctx context.Context) ([]domain.Product, error)

	// Get returns one product. An unknown id yields an apperrors.ErrNotFound
	// error.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// Recommended returns up to count products other than excludeID.
	Recommended(ctx context.Context, excludeID string, count int) ([]domain.Product, error)

	// BestSellers returns up to count top-rated products.
	BestSellers(ctx context.Context, count int) ([]domain.Product, error)

	// NewArrivals returns up to count recently added products.
	NewArrivals(ctx context.Context, count int) ([]domain.Product, error)
}

func head(products []domain.Product, count int) []domain.Product {
	if count < 0 {
		count = 0
	}
	if len(products) > count {
		products = products[:count]
	}
	return products
}
