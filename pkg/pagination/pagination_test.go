package pagination

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestNew_Offset(t *testing.T) {
	p := New(3, 12)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 12, p.PerPage)
	assert.Equal(t, 24, p.Offset)
}

func TestNew_NonPositivePerPage(t *testing.T) {
	assert.Equal(t, 1, New(1, 0).PerPage)
}

func TestPageFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil)
			assert.Equal(t, tt.want, PageFromRequest(req))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 3, TotalPages(25, 12))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestPaginate_TwentyFiveItems(t *testing.T) {
	items := seq(25)

	first := Paginate(items, New(1, 12))
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 25, first.TotalCount)
	assert.Len(t, first.Data, 12)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)

	last := Paginate(items, New(3, 12))
	require.Len(t, last.Data, 1)
	assert.Equal(t, 25, last.Data[0])
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	beyond := Paginate(items, New(4, 12))
	assert.NotNil(t, beyond.Data)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, 3, beyond.TotalPages)
}

func TestSlice_PageBelowOne(t *testing.T) {
	assert.Empty(t, Slice(seq(5), New(0, 12)))
	assert.Empty(t, Slice(seq(5), New(-1, 12)))
}

func TestNew_HugePageSaturatesOffset(t *testing.T) {
	p := New(math.MaxInt/12+2, 12)
	assert.Equal(t, math.MaxInt, p.Offset)
	assert.Equal(t, 0, New(-5, 12).Offset)
}

func TestSlice_HugePageIsEmpty(t *testing.T) {
	for _, page := range []int{math.MaxInt/12 + 2, math.MaxInt} {
		r := Paginate(seq(25), New(page, 12))
		assert.NotNil(t, r.Data)
		assert.Empty(t, r.Data)
		assert.Equal(t, 3, r.TotalPages)
		assert.False(t, r.HasNext)
	}
}

func TestSlice_HugePerPage(t *testing.T) {
	assert.Equal(t, seq(5), Slice(seq(5), New(1, math.MaxInt)))
}

func TestSlice_DoesNotAliasInput(t *testing.T) {
	items := seq(3)
	page := Slice(items, New(1, 12))
	page[0] = 99
	assert.Equal(t, 1, items[0])
}

func TestNewResult_NilData(t *testing.T) {
	r := NewResult[int](nil, 0, New(1, 12))
	assert.NotNil(t, r.Data)
	assert.Equal(t, 0, r.TotalPages)
	assert.False(t, r.HasNext)
}
