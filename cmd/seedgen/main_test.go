package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/catalog"
)

func TestRun_WritesLoadableCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	require.NoError(t, run(40, 9, path))

	s, err := catalog.LoadStatic(path)
	require.NoError(t, err)
	products, err := s.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, products, 40)
}

func TestRun_RejectsEmptyCatalog(t *testing.T) {
	err := run(0, 1, filepath.Join(t.TempDir(), "catalog.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-n must be at least 1")
}
