package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Fields(t *testing.T) {
	p := normalize(dummyProduct{
		ID:          35,
		Title:       "Essence Mascara",
		Category:    "beauty",
		Price:       9.99,
		Rating:      4.94,
		Description: "Lengthening mascara",
		Images:      []string{"https://cdn.example.com/1.png"},
		Stock:       5,
	})

	assert.Equal(t, "35", p.ID)
	assert.Equal(t, "Essence Mascara", p.Name)
	assert.Equal(t, "beauty", p.Category)
	assert.True(t, decimal.RequireFromString("9.99").Equal(p.Price))
	assert.Nil(t, p.DiscountPrice)
	assert.Equal(t, 4.94, p.Rating)
	assert.Equal(t, []string{"https://cdn.example.com/1.png"}, p.Images)
	assert.Equal(t, []string{"Black", "White", "Gray"}, p.Colors)
	assert.Empty(t, p.Sizes)
	assert.Len(t, p.Features, 4)
	assert.True(t, p.InStock)
	assert.True(t, p.IsNew, "35 is a multiple of 5")
	assert.True(t, p.IsBestSeller, "35 is a multiple of 7")
	require.NoError(t, p.Validate())
}

func TestNormalize_Defaults(t *testing.T) {
	p := normalize(dummyProduct{ID: 3})

	assert.Equal(t, "Unnamed Product", p.Name)
	assert.Equal(t, "Uncategorized", p.Category)
	assert.Equal(t, "No description available", p.Description)
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
	assert.False(t, p.InStock)
	assert.False(t, p.IsNew)
	assert.False(t, p.IsBestSeller)
}

func TestNormalize_ClothingGetsSizes(t *testing.T) {
	p := normalize(dummyProduct{ID: 1, Title: "Tee", Category: "Clothing", Price: 20})
	assert.Equal(t, []string{"S", "M", "L", "XL"}, p.Sizes)
	assert.True(t, p.HasVariants())
}

func TestNormalize_FlagsAreIndependent(t *testing.T) {
	assert.True(t, normalize(dummyProduct{ID: 10}).IsNew)
	assert.False(t, normalize(dummyProduct{ID: 10}).IsBestSeller)
	assert.True(t, normalize(dummyProduct{ID: 14}).IsBestSeller)
	assert.False(t, normalize(dummyProduct{ID: 14}).IsNew)
}

func TestNormalize_SharedSlicesAreNotAliased(t *testing.T) {
	a := normalize(dummyProduct{ID: 1})
	a.Colors[0] = "Red"
	a.Features[0] = "changed"

	b := normalize(dummyProduct{ID: 2})
	assert.Equal(t, "Black", b.Colors[0])
	assert.Equal(t, "Premium quality materials", b.Features[0])
}

func TestDiscountPrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
		pct   float64
		want  string
	}{
		{"rounds to whole unit", "9.99", 10, "9"},
		{"rounds half up", "549", 12.96, "478"},
		{"zero percent means none", "100", 0, ""},
		{"negative percent means none", "100", -5, ""},
		{"rounding above price is dropped", "0.6", 1, ""},
		{"over one hundred percent is dropped", "10", 150, ""},
		{"full discount is free", "10", 100, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := discountPrice(decimal.RequireFromString(tt.price), tt.pct)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(*got), "got %s", got)
		})
	}
}
