package domain

import (
	"slices"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Selection is the variant chosen when adding a product to the cart.
type Selection struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// CheckSelection rejects an add-to-cart for a product that defines variants
// when the matching choice is missing or not offered. Size is checked first.
func CheckSelection(p *Product, sel Selection) error {
	if len(p.Sizes) > 0 {
		if sel.Size == "" {
			return apperrors.InvalidInput("please select a size")
		}
		if !slices.Contains(p.Sizes, sel.Size) {
			return apperrors.InvalidInput("size " + sel.Size + " is not available")
		}
	}
	if len(p.Colors) > 0 {
		if sel.Color == "" {
			return apperrors.InvalidInput("please select a color")
		}
		if !slices.Contains(p.Colors, sel.Color) {
			return apperrors.InvalidInput("color " + sel.Color + " is not available")
		}
	}
	return nil
}

// DefaultSelection picks the first offered color and size, as the product
// page preselects them.
func DefaultSelection(p *Product) Selection {
	var sel Selection
	if len(p.Colors) > 0 {
		sel.Color = p.Colors[0]
	}
	if len(p.Sizes) > 0 {
		sel.Size = p.Sizes[0]
	}
	return sel
}
