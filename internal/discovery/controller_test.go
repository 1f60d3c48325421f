package discovery

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
)

type filterRecorder struct {
	mu      sync.Mutex
	filters []Filter
}

func (r *filterRecorder) record(f Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, f)
}

func (r *filterRecorder) snapshot() []Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Filter(nil), r.filters...)
}

func TestController_Defaults(t *testing.T) {
	c := NewController(0, nil)
	defer c.Close()

	assert.True(t, c.Effective().Equal(DefaultFilter()))
	assert.True(t, c.Raw().Equal(DefaultFilter()))
}

func TestController_SearchIsDebounced(t *testing.T) {
	rec := &filterRecorder{}
	c := NewController(40*time.Millisecond, rec.record)
	defer c.Close()

	for _, s := range []string{"l", "la", "lam", "lamp"} {
		c.SetSearch(s)
	}

	assert.Equal(t, "lamp", c.Raw().Search)
	assert.Empty(t, c.Effective().Search, "effective search waits for the quiet interval")
	assert.True(t, c.Pending())

	assert.Eventually(t, func() bool { return c.Effective().Search == "lamp" }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	got := rec.snapshot()
	require.Len(t, got, 1, "rapid input reports a single change")
	assert.Equal(t, "lamp", got[0].Search)
}

func TestController_PriceRangeIsDebounced(t *testing.T) {
	c := NewController(time.Hour, nil)
	defer c.Close()

	r := PriceRange{Min: decimal.NewFromInt(20), Max: decimal.NewFromInt(80)}
	require.NoError(t, c.SetPriceRange(r))

	assert.True(t, c.Raw().Price.Equal(r))
	assert.True(t, c.Effective().Price.Equal(DefaultPriceRange()))

	c.Flush()
	assert.True(t, c.Effective().Price.Equal(r))
	assert.False(t, c.Pending())
}

func TestController_RejectsInvalidInput(t *testing.T) {
	c := NewController(0, nil)
	defer c.Close()

	err := c.SetPriceRange(PriceRange{Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(1)})
	assert.Error(t, err)
	assert.True(t, c.Raw().Price.Equal(DefaultPriceRange()))

	assert.Error(t, c.SetPage(0))
	assert.Equal(t, 1, c.Effective().Page)
}

func TestController_ImmediateFields(t *testing.T) {
	rec := &filterRecorder{}
	c := NewController(time.Hour, rec.record)
	defer c.Close()

	c.SetSort(SortPriceDesc)
	require.NoError(t, c.SetPage(2))
	c.SetView(ViewList)
	assert.Equal(t, []string{"Electronics"}, c.ToggleCategory("Electronics"))

	f := c.Effective()
	assert.Equal(t, SortPriceDesc, f.Sort)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, ViewList, f.View)
	assert.Equal(t, []string{"Electronics"}, f.Categories)
	assert.Len(t, rec.snapshot(), 4)
}

func TestController_NoChangeNoNotification(t *testing.T) {
	rec := &filterRecorder{}
	c := NewController(0, rec.record)
	defer c.Close()

	c.SetSort(SortFeatured)
	c.SetView(ViewGrid)
	assert.Empty(t, rec.snapshot())
}

func TestController_CategorySequence(t *testing.T) {
	c := NewController(0, nil)
	defer c.Close()

	assert.Equal(t, []string{"Electronics"}, c.ToggleCategory("Electronics"))
	assert.Equal(t, []string{domain.CategoryAll}, c.ToggleCategory(domain.CategoryAll))
	assert.Equal(t, []string{"Electronics"}, c.ToggleCategory("Electronics"))
}

func TestController_Reset(t *testing.T) {
	rec := &filterRecorder{}
	c := NewController(time.Hour, rec.record)
	defer c.Close()

	c.SetSort(SortNewest)
	c.ToggleCategory("Home")
	require.NoError(t, c.SetPage(3))
	c.SetSearch("pending")
	before := len(rec.snapshot())

	c.Reset()

	assert.False(t, c.Pending(), "reset drops pending input")
	f := c.Effective()
	assert.Equal(t, SortFeatured, f.Sort)
	assert.Empty(t, f.Categories)
	assert.Equal(t, 1, f.Page)
	assert.Empty(t, c.Raw().Search)

	got := rec.snapshot()
	assert.Len(t, got, before+1, "reset reports one change")
}

func TestController_CloseCancelsPending(t *testing.T) {
	rec := &filterRecorder{}
	c := NewController(20*time.Millisecond, rec.record)

	c.SetSearch("lamp")
	c.Close()
	time.Sleep(80 * time.Millisecond)

	assert.Empty(t, rec.snapshot())
	assert.Empty(t, c.Effective().Search)
}

func TestController_ZeroIntervalAppliesAtOnce(t *testing.T) {
	c := NewController(0, nil)
	defer c.Close()

	c.SetSearch("desk")
	assert.Equal(t, "desk", c.Effective().Search)
}
