package discovery

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/utafrali/storefront/pkg/debounce"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Controller owns the browse filter of one session. Search text and price
// range pass through a debounce interval before they reach the effective
// filter; categories, sort, page and view apply at once.
type Controller struct {
	mu         sync.Mutex
	rawSearch  string
	rawPrice   PriceRange
	categories []string
	sort       SortKey
	page       int
	view       ViewMode

	search *debounce.Value[string]
	price  *debounce.Value[PriceRange]

	notifyMu sync.Mutex
	last     Filter
	suppress atomic.Int32
	onChange func(Filter)
}

// NewController creates a controller in the default state. onChange, if
// non-nil, is called with the effective filter each time it changes. It may
// run on a timer goroutine.
func NewController(interval time.Duration, onChange func(Filter)) *Controller {
	def := DefaultFilter()
	c := &Controller{
		rawPrice:   def.Price,
		categories: def.Categories,
		sort:       def.Sort,
		page:       def.Page,
		view:       def.View,
		last:       def,
		onChange:   onChange,
	}
	c.search = debounce.NewValue(def.Search, interval, func(string) { c.changed() })
	c.price = debounce.NewValue(def.Price, interval, func(PriceRange) { c.changed() })
	return c
}

// SetSearch updates the search text.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	c.rawSearch = text
	c.mu.Unlock()
	c.search.Set(text)
}

// SetPriceRange updates the price range. Invalid ranges are rejected.
func (c *Controller) SetPriceRange(r PriceRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.rawPrice = r
	c.mu.Unlock()
	c.price.Set(r)
	return nil
}

// SetSort changes the ordering.
func (c *Controller) SetSort(key SortKey) {
	c.update(func() { c.sort = key })
}

// ToggleCategory applies ToggleCategory to the selection and returns it.
func (c *Controller) ToggleCategory(category string) []string {
	var out []string
	c.update(func() {
		c.categories = ToggleCategory(c.categories, category)
		out = append([]string(nil), c.categories...)
	})
	return out
}

// SetPage selects a 1-based page.
func (c *Controller) SetPage(page int) error {
	if page < 1 {
		return apperrors.InvalidInput("page must be at least 1")
	}
	c.update(func() { c.page = page })
	return nil
}

// SetView switches between grid and list layout.
func (c *Controller) SetView(view ViewMode) {
	c.update(func() { c.view = view })
}

// Reset restores the default filter, dropping any pending input.
func (c *Controller) Reset() {
	def := DefaultFilter()

	c.suppress.Add(1)
	c.mu.Lock()
	c.rawSearch = def.Search
	c.rawPrice = def.Price
	c.categories = def.Categories
	c.sort = def.Sort
	c.page = def.Page
	c.mu.Unlock()
	c.search.Reset(def.Search)
	c.price.Reset(def.Price)
	c.suppress.Add(-1)

	c.changed()
}

// Flush applies pending search and price input immediately.
func (c *Controller) Flush() {
	c.search.Flush()
	c.price.Flush()
}

// Pending reports whether debounced input is still waiting.
func (c *Controller) Pending() bool {
	return c.search.Pending() || c.price.Pending()
}

// Close cancels pending timers. Setters keep working afterwards but the
// controller should be discarded.
func (c *Controller) Close() {
	c.search.Stop()
	c.price.Stop()
}

// Effective returns the filter the pipeline should use.
func (c *Controller) Effective() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter{
		Search:     c.search.Get(),
		Price:      c.price.Get(),
		Categories: c.cloneCategories(),
		Sort:       c.sort,
		Page:       c.page,
		View:       c.view,
	}
}

// Raw returns the filter as typed, before debouncing.
func (c *Controller) Raw() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter{
		Search:     c.rawSearch,
		Price:      c.rawPrice,
		Categories: c.cloneCategories(),
		Sort:       c.sort,
		Page:       c.page,
		View:       c.view,
	}
}

func (c *Controller) cloneCategories() []string {
	return append(make([]string, 0, len(c.categories)), c.categories...)
}

func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	c.mu.Unlock()
	c.changed()
}

// changed reports the effective filter when it differs from the last one
// reported.
func (c *Controller) changed() {
	if c.suppress.Load() > 0 {
		return
	}

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	f := c.Effective()
	if f.Equal(c.last) {
		return
	}
	c.last = f.clone()
	if c.onChange != nil {
		c.onChange(f)
	}
}
