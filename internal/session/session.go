// Package session composes the storefront state of one shopper: the cart,
// the wishlist, the browse filter and a cached catalog snapshot.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/utafrali/storefront/internal/cart"
	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/discovery"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/storage"
	"github.com/utafrali/storefront/internal/wishlist"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/pagination"
)

// Options tune a session.
type Options struct {
	// DebounceInterval delays search and price input.
	DebounceInterval time.Duration
	// CatalogTTL is how long a catalog snapshot is reused. Zero keeps it
	// until Refresh.
	CatalogTTL time.Duration
	// CatalogLoadTimeout bounds a shared catalog load. Zero means
	// defaultCatalogLoadTimeout.
	CatalogLoadTimeout time.Duration
}

const defaultCatalogLoadTimeout = 30 * time.Second

// DefaultOptions mirror the browse page: 500ms debounce, snapshot kept for
// five minutes.
func DefaultOptions() Options {
	return Options{
		DebounceInterval:   500 * time.Millisecond,
		CatalogTTL:         5 * time.Minute,
		CatalogLoadTimeout: defaultCatalogLoadTimeout,
	}
}

// Session is the state of one shopper. It is safe for concurrent use.
type Session struct {
	id       string
	source   catalog.Source
	cart     *cart.Store
	wishlist *wishlist.Store
	filter   *discovery.Controller
	logger   *slog.Logger
	opts     Options

	loads    singleflight.Group
	mu       sync.RWMutex
	snapshot []domain.Product
	loadedAt time.Time
}

// New creates a session and loads the cart and wishlist from kv.
func New(ctx context.Context, id string, source catalog.Source, kv storage.KV, notifier event.Notifier, l *slog.Logger, opts Options) *Session {
	ctx = logger.WithSessionID(ctx, id)

	s := &Session{
		id:       id,
		source:   source,
		cart:     cart.NewStore(ctx, kv, notifier, l),
		wishlist: wishlist.NewStore(ctx, kv, notifier, l),
		logger:   l,
		opts:     opts,
	}
	s.filter = discovery.NewController(opts.DebounceInterval, func(f discovery.Filter) {
		l.Debug("browse filter changed",
			slog.String("search", f.Search),
			slog.String("sort", string(f.Sort)),
			slog.Int("page", f.Page),
		)
	})
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Cart returns the cart store.
func (s *Session) Cart() *cart.Store { return s.cart }

// Wishlist returns the wishlist store.
func (s *Session) Wishlist() *wishlist.Store { return s.wishlist }

// Filter returns the browse filter controller.
func (s *Session) Filter() *discovery.Controller { return s.filter }

// Close cancels pending debounce timers.
func (s *Session) Close() {
	s.filter.Close()
}

// Scope attaches the session id to ctx so logs and events carry it.
func (s *Session) Scope(ctx context.Context) context.Context {
	if logger.SessionIDFromContext(ctx) == s.id {
		return ctx
	}
	return logger.WithSessionID(ctx, s.id)
}

// Products returns the catalog snapshot, loading it on first use or when
// it has expired. Concurrent callers share one upstream fetch, which is
// detached from any single caller's cancellation and bounded by
// CatalogLoadTimeout. A caller whose ctx ends first gets an empty list
// while the load carries on for the others. A failed load is logged and
// yields an empty list; the next call retries.
func (s *Session) Products(ctx context.Context) []domain.Product {
	if products, ok := s.cached(); ok {
		return products
	}

	ch := s.loads.DoChan("catalog", func() (any, error) {
		if products, ok := s.cached(); ok {
			return products, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout())
		defer cancel()

		products, err := s.source.List(loadCtx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.snapshot = products
		s.loadedAt = time.Now()
		s.mu.Unlock()
		return products, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.Err = ctx.Err()
	}
	if res.Err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to load catalog", slog.String("error", res.Err.Error()))
		return []domain.Product{}
	}
	return slices.Clone(res.Val.([]domain.Product))
}

func (s *Session) loadTimeout() time.Duration {
	if s.opts.CatalogLoadTimeout > 0 {
		return s.opts.CatalogLoadTimeout
	}
	return defaultCatalogLoadTimeout
}

// Refresh drops the cached snapshot.
func (s *Session) Refresh() {
	s.mu.Lock()
	s.snapshot = nil
	s.loadedAt = time.Time{}
	s.mu.Unlock()
}

func (s *Session) cached() ([]domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, false
	}
	if s.opts.CatalogTTL > 0 && time.Since(s.loadedAt) > s.opts.CatalogTTL {
		return nil, false
	}
	return slices.Clone(s.snapshot), true
}

// BrowsePage is the browse view: the visible page plus the filter state
// that produced it.
type BrowsePage struct {
	pagination.Result[domain.Product]
	Filter     discovery.Filter `json:"filter"`
	Input      discovery.Filter `json:"input"`
	Active     bool             `json:"active_filters"`
	Pending    bool             `json:"pending"`
	Categories []string         `json:"categories"`
}

// Browse applies the session's effective filter to the catalog.
func (s *Session) Browse(ctx context.Context) BrowsePage {
	f := s.filter.Effective()
	return BrowsePage{
		Result:     discovery.Apply(s.Products(ctx), f),
		Filter:     f,
		Input:      s.filter.Raw(),
		Active:     f.Active(),
		Pending:    s.filter.Pending(),
		Categories: slices.Clone(domain.Categories),
	}
}

// Search applies an explicit filter to the catalog without touching the
// session's filter.
func (s *Session) Search(ctx context.Context, f discovery.Filter) pagination.Result[domain.Product] {
	return discovery.Apply(s.Products(ctx), f)
}

// Product fetches one product. If the upstream fails for a reason other than
// not-found, the cached snapshot is consulted before giving up.
func (s *Session) Product(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.source.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if products, ok := s.cached(); ok {
		if i := slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id }); i >= 0 {
			logger.WithContext(ctx, s.logger).WarnContext(ctx, "serving product from cached catalog",
				slog.String("product_id", id),
				slog.String("error", err.Error()),
			)
			return &products[i], nil
		}
	}
	return nil, apperrors.Unavailable("catalog", err)
}

// Recommended returns up to count products to show next to productID.
// Upstream failures yield an empty list.
func (s *Session) Recommended(ctx context.Context, productID string, count int) []domain.Product {
	products, err := s.source.Recommended(ctx, productID, count)
	if err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to load recommendations",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return []domain.Product{}
	}
	return products
}

// Home is the landing page content.
type Home struct {
	BestSellers []domain.Product `json:"best_sellers"`
	NewArrivals []domain.Product `json:"new_arrivals"`
	Recommended []domain.Product `json:"recommended"`
}

// Home fetches the three landing page rails concurrently. A failing rail is
// logged and left empty.
func (s *Session) Home(ctx context.Context, count int) Home {
	var home Home
	g, gctx := errgroup.WithContext(ctx)

	rail := func(name string, dst *[]domain.Product, fetch func(context.Context) ([]domain.Product, error)) {
		g.Go(func() error {
			products, err := fetch(gctx)
			if err != nil {
				logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to load home rail",
					slog.String("rail", name),
					slog.String("error", err.Error()),
				)
				products = []domain.Product{}
			}
			*dst = products
			return nil
		})
	}

	rail("best_sellers", &home.BestSellers, func(ctx context.Context) ([]domain.Product, error) {
		return s.source.BestSellers(ctx, count)
	})
	rail("new_arrivals", &home.NewArrivals, func(ctx context.Context) ([]domain.Product, error) {
		return s.source.NewArrivals(ctx, count)
	})
	rail("recommended", &home.Recommended, func(ctx context.Context) ([]domain.Product, error) {
		return s.source.Recommended(ctx, "", count)
	})

	_ = g.Wait()
	return home
}

// AddToCart looks productID up, checks the variant selection and adds
// quantity units to the cart.
func (s *Session) AddToCart(ctx context.Context, productID string, quantity int, sel domain.Selection) (*domain.Product, error) {
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	p, err := s.Product(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	if err := domain.CheckSelection(p, sel); err != nil {
		return nil, err
	}
	s.cart.AddItem(s.Scope(ctx), *p, quantity)
	return p, nil
}

// AddToWishlist looks productID up and saves it.
func (s *Session) AddToWishlist(ctx context.Context, productID string) (*domain.Product, error) {
	p, err := s.Product(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("add to wishlist: %w", err)
	}
	s.wishlist.Add(s.Scope(ctx), *p)
	return p, nil
}

// ToggleWishlist saves or unsaves productID and reports whether it is saved
// afterwards. Removing a saved product does not consult the catalog.
func (s *Session) ToggleWishlist(ctx context.Context, productID string) (bool, error) {
	ctx = s.Scope(ctx)
	if s.wishlist.Contains(productID) {
		s.wishlist.Remove(ctx, productID)
		return false, nil
	}
	p, err := s.Product(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}
	return s.wishlist.Toggle(ctx, *p), nil
}
