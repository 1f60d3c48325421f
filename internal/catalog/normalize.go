package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
)

var (
	standardFeatures = []string{
		"Premium quality materials",
		"Elegant minimalist design",
		"Durable construction",
		"Easy to use interface",
	}
	standardColors = []string{"Black", "White", "Gray"}
	apparelSizes   = []string{"S", "M", "L", "XL"}
	hundred        = decimal.NewFromInt(100)
)

// normalize maps an upstream record to a product. The upstream carries no
// colors, sizes or merchandising flags, so they are derived: every product
// comes in three colors, clothing in four sizes, every fifth id is new and
// every seventh a best seller.
func normalize(r dummyProduct) domain.Product {
	p := domain.Product{
		ID:           strconv.Itoa(r.ID),
		Name:         orDefault(r.Title, "Unnamed Product"),
		Category:     orDefault(r.Category, "Uncategorized"),
		Price:        decimal.NewFromFloat(r.Price),
		Rating:       r.Rating,
		Description:  orDefault(r.Description, "No description available"),
		Features:     append([]string(nil), standardFeatures...),
		Images:       append([]string{}, r.Images...),
		Colors:       append([]string(nil), standardColors...),
		Sizes:        []string{},
		InStock:      r.Stock > 0,
		IsNew:        r.ID%5 == 0,
		IsBestSeller: r.ID%7 == 0,
	}
	if strings.EqualFold(r.Category, "clothing") {
		p.Sizes = append(p.Sizes, apparelSizes...)
	}
	p.DiscountPrice = discountPrice(p.Price, r.DiscountPercentage)
	return p
}

// discountPrice is price reduced by pct percent, rounded to a whole unit.
// It returns nil when there is no discount or rounding would push the
// discounted price outside 0..price.
func discountPrice(price decimal.Decimal, pct float64) *decimal.Decimal {
	if pct <= 0 {
		return nil
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(pct).Div(hundred))
	d := price.Mul(factor).Round(0)
	if d.IsNegative() || d.GreaterThan(price) {
		return nil
	}
	return &d
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
