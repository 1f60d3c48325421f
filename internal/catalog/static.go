package catalog

import (
	"cmp"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

//go:embed seed.json
var seedCatalog []byte

// Static serves a fixed product list held in memory.
type Static struct {
	products []domain.Product
	byID     map[string]int
}

// NewStatic creates a source over products. Duplicate ids keep the first
// occurrence.
func NewStatic(products []domain.Product) *Static {
	s := &Static{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	return s
}

// LoadStatic reads a JSON array of products from path, or the built-in seed
// catalog when path is empty. Every record must pass Product.Validate.
func LoadStatic(path string) (*Static, error) {
	data := seedCatalog
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
	}
	return NewStatic(products), nil
}

// List returns a copy of every product.
func (s *Static) List(context.Context) ([]domain.Product, error) {
	return slices.Clone(s.products), nil
}

// Get looks a product up by id.
func (s *Static) Get(_ context.Context, id string) (*domain.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	p := s.products[i]
	return &p, nil
}

// Recommended returns products from the same category as excludeID first,
// then the rest of the catalog, skipping excludeID itself.
func (s *Static) Recommended(_ context.Context, excludeID string, count int) ([]domain.Product, error) {
	var category string
	if i, ok := s.byID[excludeID]; ok {
		category = s.products[i].Category
	}

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != excludeID && category != "" && p.Category == category {
			out = append(out, p)
		}
	}
	for _, p := range s.products {
		if p.ID != excludeID && (category == "" || p.Category != category) {
			out = append(out, p)
		}
	}
	return head(out, count), nil
}

// BestSellers returns the highest rated products.
func (s *Static) BestSellers(_ context.Context, count int) ([]domain.Product, error) {
	out := slices.Clone(s.products)
	slices.SortStableFunc(out, func(a, b domain.Product) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return head(out, count), nil
}

// NewArrivals returns products flagged as new.
func (s *Static) NewArrivals(_ context.Context, count int) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsNew {
			out = append(out, p)
		}
	}
	return head(out, count), nil
}
