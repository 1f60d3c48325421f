package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/event"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/internal/storage"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httpclient"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	session        *session.Session
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		tracerShutdown: tracerShutdown,
	}

	// Metrics live in a private registry with the runtime collectors.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	registry.MustRegister(httpclient.Collectors()...)

	kv, err := a.newStorage(ctx, registry)
	if err != nil {
		_ = a.closeResources()
		return nil, err
	}

	source, err := newCatalog(cfg, logger)
	if err != nil {
		_ = a.closeResources()
		return nil, err
	}

	notifier := a.newNotifier()

	a.session = session.New(ctx, cfg.SessionID, source, kv, notifier, logger, session.Options{
		DebounceInterval: cfg.DebounceInterval,
		CatalogTTL:       cfg.CatalogCacheTTL,
	})

	// Health checks.
	healthHandler := health.NewHandler()
	if p, ok := kv.(storage.Pinger); ok {
		healthHandler.RegisterCritical("storage", p.Ping)
	}
	if p, ok := source.(interface{ Ping(context.Context) error }); ok {
		healthHandler.RegisterNonCritical("catalog", p.Ping)
	}
	if a.producer != nil {
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	cors.Environment = cfg.Environment

	// HTTP router.
	router := handler.NewRouter(a.session, healthHandler, logger, handler.RouterOptions{
		Metrics:      middleware.NewMetrics(registry, "storefront"),
		Gatherer:     registry,
		CORS:         cors,
		PprofEnabled: cfg.PprofEnabled,
		PprofCIDRs:   cfg.PprofAllowedCIDRs,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// newStorage opens the configured backend.
func (a *App) newStorage(ctx context.Context, reg prometheus.Registerer) (storage.KV, error) {
	cfg := a.cfg
	switch cfg.StorageBackend {
	case config.StorageMemory:
		a.logger.Warn("using in-memory storage, cart and wishlist will not survive a restart")
		return storage.NewMemory(), nil

	case config.StorageRedis:
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = rdb
		if err := database.RegisterPoolMetrics(reg, rdb, "storefront"); err != nil {
			return nil, fmt.Errorf("register redis metrics: %w", err)
		}
		database.SetSlowCommandLogging(time.Duration(cfg.SlowCommandThresholdMs)*time.Millisecond, a.logger)
		a.logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		return storage.NewRedis(rdb, cfg.RedisKeyPrefix, cfg.StateTTLDuration()), nil

	default:
		fs, err := storage.NewFile(cfg.StorageDir)
		if err != nil {
			return nil, err
		}
		a.logger.Info("using file storage", slog.String("dir", fs.Dir()))
		return fs, nil
	}
}

// newCatalog builds the configured product source.
func newCatalog(cfg *config.Config, logger *slog.Logger) (catalog.Source, error) {
	if cfg.CatalogSource == config.CatalogStatic {
		s, err := catalog.LoadStatic(cfg.CatalogSeedFile)
		if err != nil {
			return nil, fmt.Errorf("load static catalog: %w", err)
		}
		logger.Info("using static catalog", slog.String("seed_file", cfg.CatalogSeedFile))
		return s, nil
	}

	dj := catalog.DefaultDummyJSONConfig()
	dj.BaseURL = cfg.CatalogBaseURL
	dj.HTTP.Timeout = cfg.CatalogTimeout
	dj.HTTP.RateLimit = cfg.CatalogRateLimit
	logger.Info("using DummyJSON catalog", slog.String("base_url", cfg.CatalogBaseURL))
	return catalog.NewDummyJSON(dj, logger), nil
}

// newNotifier logs every event and, when brokers are configured, publishes
// it to Kafka as well.
func (a *App) newNotifier() event.Notifier {
	notifiers := event.Multi{event.NewLog(a.logger)}
	if len(a.cfg.KafkaBrokers) == 0 {
		return notifiers
	}

	a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(a.cfg.KafkaBrokers), a.logger)
	a.logger.Info("kafka producer initialized",
		slog.Any("brokers", a.cfg.KafkaBrokers),
		slog.String("topic", a.cfg.KafkaTopic),
	)
	return append(notifiers, event.NewKafka(a.producer, a.cfg.KafkaTopic, a.logger))
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("session_id", a.session.ID()),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: HTTP server, browse
// filter timers, tracer, Kafka producer, Redis client.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.session.Close()

	if err := a.closeResources(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// closeResources releases everything opened before the HTTP server.
func (a *App) closeResources() error {
	var errs []error

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
