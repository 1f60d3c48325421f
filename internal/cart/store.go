// Package cart holds the shopping cart: an ordered line set with derived
// item count and total, persisted after every line mutation.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/storage"
	"github.com/utafrali/storefront/pkg/logger"
)

// State is a point-in-time copy of the cart.
type State struct {
	Lines domain.CartLines `json:"lines"`
	Open  bool             `json:"open"`
	Count int              `json:"count"`
	Total decimal.Decimal  `json:"total"`
}

// Store is the cart. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	lines    domain.CartLines
	open     bool
	count    int
	total    decimal.Decimal
	kv       storage.KV
	notifier event.Notifier
	logger   *slog.Logger
}

// NewStore creates a cart and loads the persisted line set from kv. A
// missing or unreadable blob yields an empty cart.
func NewStore(ctx context.Context, kv storage.KV, notifier event.Notifier, l *slog.Logger) *Store {
	if notifier == nil {
		notifier = event.Nop{}
	}
	s := &Store{
		kv:       kv,
		notifier: notifier,
		logger:   l,
	}
	s.lines = s.load(ctx)
	s.recompute()
	return s
}

func (s *Store) load(ctx context.Context) domain.CartLines {
	lines, err := storage.LoadJSON[domain.CartLines](ctx, s.kv, storage.KeyCart)
	switch {
	case err == nil:
	case storage.IsNotFound(err):
		return domain.CartLines{}
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.WarnContext(ctx, "discarding corrupt persisted cart", slog.String("error", err.Error()))
		return domain.CartLines{}
	default:
		s.logger.ErrorContext(ctx, "failed to load cart", slog.String("error", err.Error()))
		return domain.CartLines{}
	}

	normalized, changed := lines.Normalize()
	if changed {
		s.logger.WarnContext(ctx, "repaired persisted cart",
			slog.Int("stored_lines", len(lines)),
			slog.Int("kept_lines", len(normalized)),
		)
	}
	return normalized
}

// AddItem adds quantity units of p, merging into an existing line, and
// opens the cart. A non-positive quantity is ignored. Line quantities
// saturate at domain.MaxLineQuantity.
func (s *Store) AddItem(ctx context.Context, p domain.Product, quantity int) {
	if quantity <= 0 {
		s.logger.WarnContext(ctx, "ignoring add with non-positive quantity",
			slog.String("product_id", p.ID),
			slog.Int("quantity", quantity),
		)
		return
	}

	s.mu.Lock()
	if i := s.lines.FindIndex(p.ID); i >= 0 {
		s.lines[i].Quantity = domain.AddQuantity(s.lines[i].Quantity, quantity)
	} else {
		s.lines = append(s.lines, domain.CartLine{Product: p, Quantity: domain.ClampQuantity(quantity)})
	}
	s.open = true
	s.commit(ctx)
	s.mu.Unlock()

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "item added to cart",
		slog.String("product_id", p.ID),
		slog.Int("quantity", quantity),
	)
	s.notifier.Notify(ctx, event.ItemAdded(p, quantity))
}

// RemoveItem deletes the line for productID if present.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	i := s.lines.FindIndex(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.lines[i].Product
	s.lines = append(s.lines[:i:i], s.lines[i+1:]...)
	s.commit(ctx)
	s.mu.Unlock()

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "item removed from cart",
		slog.String("product_id", productID),
	)
	s.notifier.Notify(ctx, event.ItemRemoved(removed))
}

// SetQuantity replaces the quantity of an existing line. A non-positive
// quantity removes the line and larger values are capped at
// domain.MaxLineQuantity. Unknown product ids are ignored.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}
	quantity = domain.ClampQuantity(quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lines.FindIndex(productID)
	if i < 0 || s.lines[i].Quantity == quantity {
		return
	}
	s.lines[i].Quantity = quantity
	s.commit(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = domain.CartLines{}
	s.commit(ctx)
	s.mu.Unlock()

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "cart cleared")
	s.notifier.Notify(ctx, event.CartCleared())
}

// ToggleOpen flips the cart panel visibility and returns the new value.
// Visibility is not persisted.
func (s *Store) ToggleOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

// IsOpen reports whether the cart panel is open.
func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// Lines returns a copy of the line set.
func (s *Store) Lines() domain.CartLines {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLines()
}

// Count is the sum of line quantities.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Total is the sum of effective price times quantity.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Snapshot returns a consistent copy of the whole cart.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Lines: s.copyLines(),
		Open:  s.open,
		Count: s.count,
		Total: s.total,
	}
}

func (s *Store) copyLines() domain.CartLines {
	out := make(domain.CartLines, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) recompute() {
	s.count = s.lines.ItemCount()
	s.total = s.lines.TotalAmount()
}

// commit recomputes the aggregates and persists the line set. Callers hold
// the write lock. A failed write is logged; the in-memory state stays.
func (s *Store) commit(ctx context.Context) {
	s.recompute()
	if err := storage.SaveJSON(ctx, s.kv, storage.KeyCart, s.lines); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart",
			slog.Int("lines", len(s.lines)),
			slog.String("error", err.Error()),
		)
	}
}
