package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// CategoryAll is the pseudo-category meaning "no category restriction".
const CategoryAll = "All"

// Categories lists the category filters offered on the browse page.
var Categories = []string{
	CategoryAll,
	"Electronics",
	"Clothing",
	"Home",
	"Kitchen",
	"Beauty",
}

// Product is a normalized catalog record. Products are read-only once loaded.
type Product struct {
	ID            string           `json:"id" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price" validate:"gte=0"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty" validate:"omitempty,gte=0"`
	Rating        float64          `json:"rating" validate:"gte=0,lte=5"`
	Description   string           `json:"description"`
	Features      []string         `json:"features"`
	Images        []string         `json:"images"`
	Colors        []string         `json:"colors"`
	Sizes         []string         `json:"sizes"`
	InStock       bool             `json:"in_stock"`
	IsNew         bool             `json:"is_new"`
	IsBestSeller  bool             `json:"is_best_seller"`
}

// EffectivePrice is the discounted price when present, else the base price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// HasVariants reports whether the product requires a color or size choice.
func (p *Product) HasVariants() bool {
	return len(p.Colors) > 0 || len(p.Sizes) > 0
}

// Validate checks the record invariants: required id and name, non-negative
// prices, rating within 0..5 and a discount not above the base price.
func (p *Product) Validate() error {
	if err := validator.Validate(p); err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("product %q: %s", p.ID, err.Error()))
	}
	if p.DiscountPrice != nil && p.DiscountPrice.GreaterThan(p.Price) {
		return apperrors.InvalidInput(fmt.Sprintf("product %q: discount price %s exceeds price %s",
			p.ID, p.DiscountPrice.String(), p.Price.String()))
	}
	return nil
}
