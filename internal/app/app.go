package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/auth"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/config"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/event"
	handler "github.com/Pavlo-fo95/ls-resort-backend/internal/handler/http"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/identity"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/repository/postgres"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/service"
	"github.com/Pavlo-fo95/ls-resort-backend/migrations"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/database"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/health"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httpclient"
	pkgkafka "github.com/Pavlo-fo95/ls-resort-backend/pkg/kafka"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/middleware"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/tracing"
)

const (
	serviceName    = "ls-resort-backend"
	serviceVersion = "0.1.0"

	rateLimitWindow = time.Minute
)

// App wires together all dependencies and runs the backend.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	producer       *pkgkafka.Producer
	memLimiter     *middleware.MemoryLimiter
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
// Redis and Kafka are optional: when disabled or unreachable the rate limiter
// falls back to process memory and domain events are dropped.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(httpclient.Collectors()...)

	if err := a.initPostgres(ctx, reg); err != nil {
		_ = a.Shutdown()
		return nil, err
	}

	limiter := a.initLimiter(ctx)
	publisher := a.initEvents(ctx, reg)

	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:    cfg.JWTSecret,
		Algorithm: cfg.JWTAlgorithm,
		TTL:       cfg.AccessTTL(),
	})
	if err != nil {
		_ = a.Shutdown()
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = cfg.GoogleTimeout
	googleClient := httpclient.NewCircuitBreakerClient(
		httpclient.New(clientCfg),
		httpclient.DefaultCircuitBreakerConfig("google-tokeninfo"),
		logger,
	)
	verifier := identity.NewGoogleVerifier(googleClient, identity.GoogleConfig{
		TokenInfoURL: cfg.GoogleTokenInfoURL,
		ClientID:     cfg.GoogleClientID,
	}, logger)
	if cfg.GoogleClientID == "" {
		logger.Warn("GOOGLE_CLIENT_ID not set, federated login audience is not checked")
	}

	// Build the dependency graph.
	userRepo := postgres.NewUserRepository(a.pool)
	authService := service.NewAuthService(userRepo, tokens, verifier, publisher, logger)
	services := handler.Services{
		Auth:    authService,
		Admin:   service.NewAdminService(userRepo, authService, cfg.AdminBootstrapSecret, logger),
		Search:  service.NewSearchService(postgres.NewSearchEventRepository(a.pool), logger),
		Contact: service.NewContactService(postgres.NewContactRepository(a.pool), publisher, logger),
		Catalog: service.NewCatalogService(postgres.NewServiceItemRepository(a.pool)),
		Review:  service.NewReviewService(postgres.NewReviewRepository(a.pool), publisher, logger),
	}

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return a.pool.Ping(ctx)
	})
	if a.redis != nil {
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		})
	}
	if a.producer != nil {
		healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
			return a.producer.Ping(ctx)
		})
	}

	router := handler.NewRouter(services, healthHandler, handler.RouterConfig{
		CORS:     corsConfig(cfg),
		Limiter:  limiter,
		Metrics:  middleware.NewHTTPMetrics(reg, serviceName),
		Gatherer: reg,
	}, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

func (a *App) initPostgres(ctx context.Context, reg prometheus.Registerer) error {
	pgCfg := database.DefaultPostgresConfig(a.cfg.DatabaseURL)
	pgCfg.MaxConns = a.cfg.DBMaxConns
	pgCfg.MinConns = a.cfg.DBMinConns
	pgCfg.MaxConnLifetime = time.Duration(a.cfg.DBMaxConnLifetimeMins) * time.Minute
	pgCfg.MaxConnIdleTime = time.Duration(a.cfg.DBMaxConnIdleTimeMins) * time.Minute

	pool, err := database.NewPostgresPool(ctx, &pgCfg, a.logger)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	a.logger.Info("connected to PostgreSQL")

	if err := database.RegisterPoolMetrics(reg, pool, serviceName); err != nil {
		return fmt.Errorf("register pool metrics: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, a.logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	a.logger.Info("database migrations completed")

	if a.cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(a.cfg.SlowQueryThresholdMs)*time.Millisecond, a.logger)
	}
	return nil
}

// initLimiter prefers a Redis-backed limiter shared across replicas.
func (a *App) initLimiter(ctx context.Context) middleware.Limiter {
	if a.cfg.RedisEnabled {
		client, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err == nil {
			a.redis = client
			a.logger.Info("rate limiting backed by redis", slog.String("addr", a.cfg.RedisAddr))
			return middleware.NewRedisLimiter(client, a.cfg.RateLimitPerMinute, rateLimitWindow)
		}
		a.logger.Warn("redis unavailable, using in-memory rate limiter", slog.String("error", err.Error()))
	}

	a.memLimiter = middleware.NewMemoryLimiter(a.cfg.RateLimitPerMinute)
	return a.memLimiter
}

func (a *App) initEvents(ctx context.Context, reg prometheus.Registerer) event.Publisher {
	if !a.cfg.KafkaEnabled {
		a.logger.Info("kafka disabled, domain events are not published")
		return event.NopPublisher{}
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(a.cfg.KafkaBrokers), a.logger)
	if err := producer.Ping(ctx); err != nil {
		a.logger.Warn("kafka unreachable at start-up, events will be retried per publish",
			slog.String("error", err.Error()),
		)
	}
	reg.MustRegister(pkgkafka.Collectors()...)
	a.producer = producer
	a.logger.Info("kafka producer initialized", slog.Any("brokers", a.cfg.KafkaBrokers))
	return event.NewProducer(producer, a.logger)
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		c.AllowedOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
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

// Shutdown stops components in dependency order: HTTP server, tracer, Kafka,
// Redis, rate limiter, then the PostgreSQL pool. It tolerates a partially
// initialized App.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	if a.httpServer != nil {
		httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer httpCancel()
		if err := a.httpServer.Shutdown(httpCtx); err != nil {
			a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// Flush spans after the HTTP drain so in-flight request spans are kept.
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

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.memLimiter != nil {
		a.memLimiter.Stop()
	}

	if a.pool != nil {
		a.pool.Close()
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
