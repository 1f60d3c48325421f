package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/slug"
)

// generatedNamespace keys the deterministic product ids, so regenerating a
// catalog with the same seed yields the same ids.
var generatedNamespace = uuid.MustParse("5b0c7f0e-6f7d-4a53-9a43-5d1f2b8c0e11")

// generatorCategory is one browse category and its share of the catalog.
type generatorCategory struct {
	name     string
	weight   float64
	types    []string
	minPrice int64 // cents
	maxPrice int64 // cents
	colors   bool
	sizes    []string
}

var generatorCategories = []generatorCategory{
	{
		name: "Electronics", weight: 0.25,
		types:    []string{"Headphones", "Smart Watch", "Bluetooth Speaker", "Tablet", "Webcam", "Keyboard"},
		minPrice: 1999, maxPrice: 89999, colors: true,
	},
	{
		name: "Clothing", weight: 0.30,
		types:    []string{"Shirt", "Jacket", "Sweater", "Dress", "Trousers", "Hoodie"},
		minPrice: 1499, maxPrice: 24999, colors: true,
		sizes: []string{"XS", "S", "M", "L", "XL"},
	},
	{
		name: "Home", weight: 0.20,
		types:    []string{"Desk Lamp", "Throw Blanket", "Wall Clock", "Vase", "Cushion"},
		minPrice: 999, maxPrice: 19999, colors: true,
	},
	{
		name: "Kitchen", weight: 0.15,
		types:    []string{"Kettle", "Chef Knife", "Cutting Board", "French Press", "Dutch Oven"},
		minPrice: 1299, maxPrice: 29999,
	},
	{
		name: "Beauty", weight: 0.10,
		types:    []string{"Face Serum", "Lip Balm", "Hair Dryer", "Perfume", "Moisturizer"},
		minPrice: 599, maxPrice: 12999,
	},
}

var generatorAdjectives = []string{
	"Classic", "Modern", "Minimal", "Premium", "Compact", "Vintage",
	"Everyday", "Deluxe", "Eco", "Signature", "Studio", "Crème",
}

var generatorColors = []string{"Black", "White", "Gray", "Navy", "Beige", "Green", "Red", "Blue"}

var generatorFeatures = []string{
	"Premium quality materials",
	"Elegant minimalist design",
	"Durable construction",
	"Easy to use",
	"Free returns within 30 days",
	"Sustainably sourced",
}

// Generate builds a synthetic catalog of n products for load testing the
// discovery pipeline. The same seed always produces the same catalog, and
// every product passes Product.Validate.
func Generate(n int, seed uint64) []domain.Product {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	products := make([]domain.Product, 0, max(n, 0))
	for i := range n {
		c := pickCategory(rng)
		name := fmt.Sprintf("%s %s",
			generatorAdjectives[rng.IntN(len(generatorAdjectives))],
			c.types[rng.IntN(len(c.types))],
		)

		price := decimal.New(c.minPrice+rng.Int64N(c.maxPrice-c.minPrice+1), -2)
		var discount *decimal.Decimal
		if rng.Float64() < 0.3 {
			discount = discountPrice(price, float64(5+rng.IntN(41)))
		}

		p := domain.Product{
			ID:            uuid.NewSHA1(generatedNamespace, []byte(strconv.Itoa(i))).String(),
			Name:          name,
			Category:      c.name,
			Price:         price,
			DiscountPrice: discount,
			Rating:        math.Round((3+rng.Float64()*2)*10) / 10,
			Description:   fmt.Sprintf("%s from the %s collection.", name, c.name),
			Features:      sample(rng, generatorFeatures, 2+rng.IntN(3)),
			Images:        []string{fmt.Sprintf("https://images.example.com/products/%s.jpg", slug.WithSuffix(name, i))},
			Colors:        []string{},
			Sizes:         []string{},
			InStock:       rng.Float64() < 0.9,
			IsNew:         rng.Float64() < 0.15,
			IsBestSeller:  rng.Float64() < 0.1,
		}
		if c.colors {
			p.Colors = sample(rng, generatorColors, 1+rng.IntN(3))
		}
		if len(c.sizes) > 0 {
			p.Sizes = append([]string(nil), c.sizes...)
		}
		products = append(products, p)
	}
	return products
}

func pickCategory(rng *rand.Rand) generatorCategory {
	r := rng.Float64()
	for _, c := range generatorCategories {
		if r < c.weight {
			return c
		}
		r -= c.weight
	}
	return generatorCategories[len(generatorCategories)-1]
}

// sample returns k distinct items from src in random order.
func sample(rng *rand.Rand, src []string, k int) []string {
	k = min(k, len(src))
	idx := rng.Perm(len(src))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}
