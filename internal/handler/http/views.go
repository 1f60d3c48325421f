package http

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

const maxRecommendations = 20

var errCount = fmt.Errorf("query parameter count must be between 1 and %d", maxRecommendations)

// productView is a product plus the per-session flags the product page
// renders.
type productView struct {
	*domain.Product
	Saved    bool            `json:"saved"`
	Price    decimal.Decimal `json:"effective_price"`
	Variants bool            `json:"has_variants"`
}

// membership answers wishlist lookups.
type membership struct {
	ProductID string `json:"product_id"`
	Saved     bool   `json:"saved"`
}

func badRequest(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.InvalidInput(err.Error())
}

// badRequestUnlessValidation keeps validator errors, which carry field
// details, and turns body decoding failures into invalid input.
func badRequestUnlessValidation(err error) error {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		return err
	}
	return apperrors.InvalidInput(err.Error())
}
