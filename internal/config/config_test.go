package config

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, CatalogDummyJSON, cfg.CatalogSource)
	assert.Equal(t, "https://dummyjson.com", cfg.CatalogBaseURL)
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, StorageFile, cfg.StorageBackend)
	assert.Equal(t, ".storefront", cfg.StorageDir)
	assert.Equal(t, "storefront:", cfg.RedisKeyPrefix)
	assert.Equal(t, 720*time.Hour, cfg.StateTTLDuration())
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceInterval)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "storefront.events", cfg.KafkaTopic)
	assert.False(t, cfg.OTELEnabled)
	assert.False(t, cfg.PprofEnabled)
	assert.Equal(t, []string{"127.0.0.0/8", "::1/128"}, cfg.PprofAllowedCIDRs)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_GeneratesSessionID(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	_, err = uuid.Parse(cfg.SessionID)
	assert.NoError(t, err)
}

func TestLoad_KeepsSessionID(t *testing.T) {
	t.Setenv("SESSION_ID", "kiosk-7")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "kiosk-7", cfg.SessionID)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "9090")
	t.Setenv("CATALOG_SOURCE", "static")
	t.Setenv("CATALOG_SEED_FILE", "seed.json")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis.local:6380")
	t.Setenv("STATE_TTL_HOURS", "24")
	t.Setenv("DEBOUNCE_INTERVAL", "250ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com,https://admin.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, CatalogStatic, cfg.CatalogSource)
	assert.Equal(t, "seed.json", cfg.CatalogSeedFile)
	assert.Equal(t, StorageRedis, cfg.StorageBackend)
	assert.Equal(t, "redis.local:6380", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.StateTTLDuration())
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "port zero",
			env:     map[string]string{"STOREFRONT_HTTP_PORT": "0"},
			wantErr: "invalid HTTP port",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"STOREFRONT_HTTP_PORT": "70000"},
			wantErr: "invalid HTTP port",
		},
		{
			name:    "unknown catalog source",
			env:     map[string]string{"CATALOG_SOURCE": "shopify"},
			wantErr: "CATALOG_SOURCE must be one of",
		},
		{
			name:    "bad catalog url",
			env:     map[string]string{"CATALOG_BASE_URL": "not a url"},
			wantErr: "invalid CATALOG_BASE_URL",
		},
		{
			name:    "unknown storage backend",
			env:     map[string]string{"STORAGE_BACKEND": "postgres"},
			wantErr: "STORAGE_BACKEND must be one of",
		},
		{
			name:    "negative state ttl",
			env:     map[string]string{"STATE_TTL_HOURS": "-1"},
			wantErr: "STATE_TTL_HOURS must not be negative",
		},
		{
			name:    "sample rate above one",
			env:     map[string]string{"OTEL_SAMPLE_RATE": "2.0"},
			wantErr: "OTEL_SAMPLE_RATE must be between 0.0 and 1.0",
		},
		{
			name:    "bad pprof cidr",
			env:     map[string]string{"PPROF_ALLOWED_CIDRS": "10.0.0.0/33"},
			wantErr: "invalid PPROF_ALLOWED_CIDRS entry",
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"DEBOUNCE_INTERVAL": "soon"},
			wantErr: "load storefront config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
