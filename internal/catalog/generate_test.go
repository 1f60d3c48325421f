package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/discovery"
	"github.com/utafrali/storefront/internal/domain"
)

func TestGenerate_ProducesValidProducts(t *testing.T) {
	products := Generate(500, 42)

	require.Len(t, products, 500)
	ids := make(map[string]struct{}, len(products))
	for _, p := range products {
		require.NoError(t, p.Validate())
		assert.True(t, slices.Contains(domain.Categories, p.Category), p.Category)
		assert.NotEqual(t, domain.CategoryAll, p.Category)
		assert.NotNil(t, p.Colors)
		assert.NotNil(t, p.Sizes)
		ids[p.ID] = struct{}{}
	}
	assert.Len(t, ids, len(products), "ids must be unique")
}

func TestGenerate_IsDeterministic(t *testing.T) {
	a, err := json.Marshal(Generate(50, 7))
	require.NoError(t, err)
	b, err := json.Marshal(Generate(50, 7))
	require.NoError(t, err)
	c, err := json.Marshal(Generate(50, 8))
	require.NoError(t, err)

	assert.JSONEq(t, string(a), string(b))
	assert.NotEqual(t, string(a), string(c))
}

func TestGenerate_IDsDependOnPositionOnly(t *testing.T) {
	a := Generate(3, 1)
	b := Generate(3, 2)

	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}
}

func TestGenerate_Empty(t *testing.T) {
	assert.Empty(t, Generate(0, 1))
	assert.Empty(t, Generate(-5, 1))
}

func TestGenerate_LoadsAsStaticCatalog(t *testing.T) {
	data, err := json.Marshal(Generate(25, 3))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	s, err := LoadStatic(path)
	require.NoError(t, err)

	products, err := s.List(t.Context())
	require.NoError(t, err)
	require.Len(t, products, 25)

	res := discovery.Apply(products, discovery.DefaultFilter())
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Data, 12)
}
