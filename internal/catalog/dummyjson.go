package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/sony/gobreaker/v2"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// DefaultBaseURL is the public DummyJSON API.
const DefaultBaseURL = "https://dummyjson.com"

// recommendationCategories are the upstream categories sampled for
// recommendations.
var recommendationCategories = []string{"smartphones", "laptops", "fragrances", "skincare"}

// DummyJSONConfig configures the DummyJSON source.
type DummyJSONConfig struct {
	BaseURL string
	HTTP    httpclient.Config
	Breaker httpclient.CircuitBreakerConfig
}

// DefaultDummyJSONConfig returns defaults for the public API.
func DefaultDummyJSONConfig() DummyJSONConfig {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.RateLimit = 5
	httpCfg.RateBurst = 5
	return DummyJSONConfig{
		BaseURL: DefaultBaseURL,
		HTTP:    httpCfg,
		Breaker: httpclient.DefaultCircuitBreakerConfig("catalog"),
	}
}

// DummyJSON reads products from a DummyJSON compatible API and normalizes
// them into domain products.
type DummyJSON struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// DummyJSONOption customizes a DummyJSON source.
type DummyJSONOption func(*DummyJSON)

// WithRand sets the random source used to pick and shuffle recommendations.
func WithRand(r *rand.Rand) DummyJSONOption {
	return func(d *DummyJSON) { d.rng = r }
}

// NewDummyJSON creates a DummyJSON source.
func NewDummyJSON(cfg DummyJSONConfig, logger *slog.Logger, opts ...DummyJSONOption) *DummyJSON {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	d := &DummyJSON{
		client:  httpclient.NewCircuitBreakerClient(httpclient.New(cfg.HTTP), cfg.Breaker, logger),
		baseURL: base,
		logger:  logger,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// dummyProduct is the upstream record shape.
type dummyProduct struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Description        string   `json:"description"`
	Images             []string `json:"images"`
	Stock              int      `json:"stock"`
}

type dummyList struct {
	Products []dummyProduct `json:"products"`
	Total    int            `json:"total"`
	Skip     int            `json:"skip"`
	Limit    int            `json:"limit"`
}

// List fetches the first 100 products.
func (d *DummyJSON) List(ctx context.Context) ([]domain.Product, error) {
	raw, err := d.fetchList(ctx, "/products", url.Values{"limit": {"100"}})
	if err != nil {
		return nil, err
	}
	return d.normalizeAll(ctx, raw), nil
}

// Get fetches one product by id.
func (d *DummyJSON) Get(ctx context.Context, id string) (*domain.Product, error) {
	var raw dummyProduct
	if err := d.client.GetJSON(ctx, d.baseURL+"/products/"+url.PathEscape(id), &raw); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}

	p := normalize(raw)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

// Recommended fetches one randomly chosen category, drops excludeID,
// shuffles and keeps count products.
func (d *DummyJSON) Recommended(ctx context.Context, excludeID string, count int) ([]domain.Product, error) {
	d.rngMu.Lock()
	category := recommendationCategories[d.rng.IntN(len(recommendationCategories))]
	d.rngMu.Unlock()

	raw, err := d.fetchList(ctx, "/products/category/"+url.PathEscape(category), nil)
	if err != nil {
		return nil, err
	}

	kept := raw[:0]
	for _, p := range raw {
		if excludeID != "" && strconv.Itoa(p.ID) == excludeID {
			continue
		}
		kept = append(kept, p)
	}
	products := d.normalizeAll(ctx, kept)

	d.rngMu.Lock()
	d.rng.Shuffle(len(products), func(i, j int) { products[i], products[j] = products[j], products[i] })
	d.rngMu.Unlock()

	return head(products, count), nil
}

// BestSellers fetches 30 products and keeps the count highest rated.
func (d *DummyJSON) BestSellers(ctx context.Context, count int) ([]domain.Product, error) {
	raw, err := d.fetchList(ctx, "/products", url.Values{"limit": {"30"}})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(raw, func(a, b dummyProduct) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		default:
			return 0
		}
	})
	return head(d.normalizeAll(ctx, raw), count), nil
}

// NewArrivals fetches products 51..80 and keeps the first count.
func (d *DummyJSON) NewArrivals(ctx context.Context, count int) ([]domain.Product, error) {
	raw, err := d.fetchList(ctx, "/products", url.Values{"limit": {"30"}, "skip": {"50"}})
	if err != nil {
		return nil, err
	}
	return head(d.normalizeAll(ctx, raw), count), nil
}

// Ping fails while the circuit breaker is open.
func (d *DummyJSON) Ping(context.Context) error {
	if d.client.State() == gobreaker.StateOpen {
		return fmt.Errorf("catalog circuit breaker is open")
	}
	return nil
}

func (d *DummyJSON) fetchList(ctx context.Context, path string, query url.Values) ([]dummyProduct, error) {
	target := d.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var list dummyList
	if err := d.client.GetJSON(ctx, target, &list); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if list.Products == nil {
		return nil, fmt.Errorf("fetch %s: response has no products array", path)
	}
	return list.Products, nil
}

// normalizeAll converts raw records, dropping those that fail validation.
func (d *DummyJSON) normalizeAll(ctx context.Context, raw []dummyProduct) []domain.Product {
	out := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		p := normalize(r)
		if err := p.Validate(); err != nil {
			d.logger.WarnContext(ctx, "dropping invalid catalog record",
				slog.Int("upstream_id", r.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		out = append(out, p)
	}
	return out
}
