// Package wishlist holds the set of saved products, keyed by product id in
// insertion order and persisted after every change.
package wishlist

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/storage"
	"github.com/utafrali/storefront/pkg/logger"
)

// State is a point-in-time copy of the wishlist.
type State struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// Store is the wishlist. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	items    []domain.Product
	index    map[string]struct{}
	kv       storage.KV
	notifier event.Notifier
	logger   *slog.Logger
}

// NewStore creates a wishlist and loads the persisted items from kv.
func NewStore(ctx context.Context, kv storage.KV, notifier event.Notifier, l *slog.Logger) *Store {
	if notifier == nil {
		notifier = event.Nop{}
	}
	s := &Store{
		kv:       kv,
		notifier: notifier,
		logger:   l,
	}
	s.reset(s.load(ctx))
	return s
}

func (s *Store) load(ctx context.Context) []domain.Product {
	items, err := storage.LoadJSON[[]domain.Product](ctx, s.kv, storage.KeyWishlist)
	switch {
	case err == nil:
		return items
	case storage.IsNotFound(err):
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.WarnContext(ctx, "discarding corrupt persisted wishlist", slog.String("error", err.Error()))
	default:
		s.logger.ErrorContext(ctx, "failed to load wishlist", slog.String("error", err.Error()))
	}
	return nil
}

// reset replaces the contents, dropping duplicates and records without an id.
func (s *Store) reset(items []domain.Product) {
	s.items = make([]domain.Product, 0, len(items))
	s.index = make(map[string]struct{}, len(items))
	for _, p := range items {
		if p.ID == "" {
			continue
		}
		if _, ok := s.index[p.ID]; ok {
			continue
		}
		s.index[p.ID] = struct{}{}
		s.items = append(s.items, p)
	}
}

// Add inserts p unless a product with the same id is already saved.
// Products without an id are ignored.
func (s *Store) Add(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	added := s.add(ctx, p)
	s.mu.Unlock()

	if added {
		s.changed(ctx, event.ActionAdded, p)
	}
}

// Remove deletes productID if present.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	p, removed := s.remove(ctx, productID)
	s.mu.Unlock()

	if removed {
		s.changed(ctx, event.ActionRemoved, p)
	}
}

// Toggle adds p when absent and removes it when present. It returns whether
// p is saved after the call.
func (s *Store) Toggle(ctx context.Context, p domain.Product) bool {
	s.mu.Lock()
	if _, ok := s.index[p.ID]; ok {
		removed, _ := s.remove(ctx, p.ID)
		s.mu.Unlock()
		s.changed(ctx, event.ActionRemoved, removed)
		return false
	}
	added := s.add(ctx, p)
	s.mu.Unlock()
	if added {
		s.changed(ctx, event.ActionAdded, p)
	}
	return added
}

// Contains reports whether productID is saved.
func (s *Store) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[productID]
	return ok
}

// Clear removes every saved product.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.reset(nil)
	s.persist(ctx)
	s.mu.Unlock()

	s.changed(ctx, event.ActionCleared, domain.Product{})
}

// Items returns the saved products in insertion order.
func (s *Store) Items() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyItems()
}

// Count is the number of saved products.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a consistent copy of the wishlist.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Items: s.copyItems(), Count: len(s.items)}
}

func (s *Store) copyItems() []domain.Product {
	out := make([]domain.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) add(ctx context.Context, p domain.Product) bool {
	if p.ID == "" {
		s.logger.WarnContext(ctx, "ignoring wishlist product without id")
		return false
	}
	if _, ok := s.index[p.ID]; ok {
		return false
	}
	s.index[p.ID] = struct{}{}
	s.items = append(s.items, p)
	s.persist(ctx)
	return true
}

func (s *Store) remove(ctx context.Context, productID string) (domain.Product, bool) {
	if _, ok := s.index[productID]; !ok {
		return domain.Product{}, false
	}
	var removed domain.Product
	for i := range s.items {
		if s.items[i].ID == productID {
			removed = s.items[i]
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	delete(s.index, productID)
	s.persist(ctx)
	return removed, true
}

func (s *Store) persist(ctx context.Context) {
	if err := storage.SaveJSON(ctx, s.kv, storage.KeyWishlist, s.items); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist wishlist",
			slog.Int("items", len(s.items)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) changed(ctx context.Context, action event.Action, p domain.Product) {
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "wishlist changed",
		slog.String("action", string(action)),
		slog.String("product_id", p.ID),
	)
	s.notifier.Notify(ctx, event.WishlistChanged(action, p))
}
