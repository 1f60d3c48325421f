package config

import (
	"fmt"
	"net/netip"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Catalog sources.
const (
	CatalogDummyJSON = "dummyjson"
	CatalogStatic    = "static"
)

// Storage backends.
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// SessionID keys the persisted cart and wishlist in logs and events.
	// Generated when empty.
	SessionID string `env:"SESSION_ID"`

	// Catalog
	CatalogSource    string        `env:"CATALOG_SOURCE" envDefault:"dummyjson"`
	CatalogBaseURL   string        `env:"CATALOG_BASE_URL" envDefault:"https://dummyjson.com"`
	CatalogSeedFile  string        `env:"CATALOG_SEED_FILE"`
	CatalogTimeout   time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	CatalogRateLimit float64       `env:"CATALOG_RATE_LIMIT" envDefault:"5"`
	CatalogCacheTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	// Storage
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	StorageDir     string `env:"STORAGE_DIR" envDefault:".storefront"`

	// Redis
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"storefront:"`

	// Slow redis command logging. Zero disables it.
	SlowCommandThresholdMs int `env:"LOG_SLOW_COMMAND_MS" envDefault:"100"`

	// State TTL in hours for the redis backend (default: 30 days)
	StateTTL int `env:"STATE_TTL_HOURS" envDefault:"720"`

	// Browse filter debounce for search and price input
	DebounceInterval time.Duration `env:"DEBOUNCE_INTERVAL" envDefault:"500ms"`

	// Kafka. No brokers disables event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"storefront.events"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofEnabled      bool     `env:"PPROF_ENABLED" envDefault:"false"`
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	switch c.CatalogSource {
	case CatalogDummyJSON:
		if _, err := url.ParseRequestURI(c.CatalogBaseURL); err != nil {
			return fmt.Errorf("invalid CATALOG_BASE_URL %q: %w", c.CatalogBaseURL, err)
		}
	case CatalogStatic:
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of %q, %q, got %q", CatalogDummyJSON, CatalogStatic, c.CatalogSource)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got %s", c.CatalogTimeout)
	}
	if c.CatalogRateLimit < 0 {
		return fmt.Errorf("CATALOG_RATE_LIMIT must not be negative, got %g", c.CatalogRateLimit)
	}

	backends := []string{StorageFile, StorageMemory, StorageRedis}
	if !slices.Contains(backends, c.StorageBackend) {
		return fmt.Errorf("STORAGE_BACKEND must be one of %v, got %q", backends, c.StorageBackend)
	}
	if c.StorageBackend == StorageFile && c.StorageDir == "" {
		return fmt.Errorf("STORAGE_DIR is required for the file backend")
	}
	if c.StorageBackend == StorageRedis && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required for the redis backend")
	}
	if c.StateTTL < 0 {
		return fmt.Errorf("STATE_TTL_HOURS must not be negative, got %d", c.StateTTL)
	}

	if c.DebounceInterval < 0 {
		return fmt.Errorf("DEBOUNCE_INTERVAL must not be negative, got %s", c.DebounceInterval)
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	for _, cidr := range c.PprofAllowedCIDRs {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			return fmt.Errorf("invalid PPROF_ALLOWED_CIDRS entry %q: %w", cidr, err)
		}
	}
	return nil
}

// StateTTLDuration returns the redis key TTL.
func (c *Config) StateTTLDuration() time.Duration {
	return time.Duration(c.StateTTL) * time.Hour
}

// IsDevelopment reports whether the storefront runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
