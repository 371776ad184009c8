package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/verdant/internal"
	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/cache"
	"github.com/dukerupert/verdant/internal/email"
	"github.com/dukerupert/verdant/internal/events"
	"github.com/dukerupert/verdant/internal/handler"
	"github.com/dukerupert/verdant/internal/handler/api"
	"github.com/dukerupert/verdant/internal/handler/webhook"
	"github.com/dukerupert/verdant/internal/middleware"
	"github.com/dukerupert/verdant/internal/outbox"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/router"
	"github.com/dukerupert/verdant/internal/routes"
	"github.com/dukerupert/verdant/internal/service"
	"github.com/dukerupert/verdant/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// ==========================================================================
	// Database
	// ==========================================================================

	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(ctx, sqlDB, logger); err != nil {
		sqlDB.Close()
		return fmt.Errorf("migration failed: %w", err)
	}
	sqlDB.Close()

	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()
	store := repository.NewStore(pool)
	logger.Info("Database connection established")

	// ==========================================================================
	// Metrics
	// ==========================================================================

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewMetrics("verdant", registry)
	businessMetrics := telemetry.NewBusinessMetrics("verdant", registry)

	// ==========================================================================
	// Cache
	// ==========================================================================

	plantCache, closeCache, err := newPlantCache(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	// ==========================================================================
	// Payment gateway
	// ==========================================================================

	gateway, err := newGateway(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("Payment gateway configured", "provider", gateway.Name(), "currency", cfg.Payment.Currency)

	// ==========================================================================
	// Services
	// ==========================================================================

	users := service.NewUserDirectory(store)
	catalog := service.NewCatalogService(store, plantCache, logger)
	cartService := service.NewCartService(store, businessMetrics, logger)
	orderService := service.NewOrderService(store, users, gateway, catalog, businessMetrics, service.OrderConfig{
		Currency:       cfg.Payment.Currency,
		GatewayTimeout: cfg.Payment.GatewayTimeout,
	}, logger)

	// ==========================================================================
	// Outbox relay
	// ==========================================================================

	publisher, err := newPublisher(cfg.Events, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	notifier, err := newNotifier(cfg.Email, logger)
	if err != nil {
		return err
	}

	relay := outbox.NewRelay(store, publisher, notifier, businessMetrics, outbox.Config{
		PollInterval: cfg.Events.OutboxPollInterval,
		BatchSize:    cfg.Events.OutboxBatchSize,
		MaxAttempts:  cfg.Events.OutboxMaxAttempts,
	}, logger)

	// ==========================================================================
	// HTTP
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		telemetry.SentryMiddleware(),
		httpMetrics.Middleware,
		middleware.Timeout(cfg.Server.RequestTimeout),
		router.Logger(logger),
	)

	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(router.CORS(cfg.Server.CORSOrigins))
	}

	var paymentLimiter router.Middleware
	if cfg.Server.RateLimit {
		general := middleware.NewRateLimiter(middleware.APIRateLimit())
		defer general.Stop()
		strict := middleware.NewRateLimiter(middleware.PaymentRateLimit())
		defer strict.Stop()

		r.Use(general.Middleware)
		paymentLimiter = strict.Middleware
	}

	routes.RegisterOpsRoutes(r, routes.OpsDeps{
		Health:  healthHandler(pool),
		Metrics: httpMetrics.Handler(),
	})

	apiRouter := r.Group(middleware.MaxBodySize(cfg.Server.MaxBodyBytes))
	routes.RegisterAPIRoutes(apiRouter, routes.APIDeps{
		CartHandler:    api.NewCartHandler(cartService),
		OrderHandler:   api.NewOrderHandler(orderService),
		PaymentHandler: api.NewPaymentHandler(orderService),
		PlantHandler:   api.NewPlantHandler(catalog),
		PaymentLimiter: paymentLimiter,
	})

	var webhookDeps routes.WebhookDeps
	if verifier, ok := gateway.(billing.WebhookVerifier); ok {
		switch {
		case cfg.Payment.Provider == "stripe" && cfg.Stripe.WebhookSecret != "":
			webhookDeps.StripeHandler = webhook.NewStripeHandler(verifier, orderService, businessMetrics, webhook.StripeWebhookConfig{
				WebhookSecret: cfg.Stripe.WebhookSecret,
			}, logger).HandleWebhook
		case cfg.Payment.Provider == "razorpay" && cfg.Razorpay.WebhookSecret != "":
			webhookDeps.RazorpayHandler = webhook.NewRazorpayHandler(verifier, orderService, businessMetrics,
				cfg.Razorpay.WebhookSecret, logger).HandleWebhook
		}
	}
	routes.RegisterWebhookRoutes(r.Group(middleware.MaxBodySize(middleware.WebhookMaxBodySize)), webhookDeps)

	r.Fallback()
	for _, route := range r.Routes() {
		logger.Debug("route registered", "route", route)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// ==========================================================================
	// Run
	// ==========================================================================

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return relay.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// newGateway builds the configured payment provider behind a circuit breaker.
func newGateway(cfg *internal.Config, logger *slog.Logger) (billing.Provider, error) {
	var provider billing.Provider
	switch cfg.Payment.Provider {
	case "razorpay":
		rc := billing.RazorpayConfig{KeyID: cfg.Razorpay.KeyID, KeySecret: cfg.Razorpay.KeySecret}
		p, err := billing.NewRazorpayProvider(rc)
		if err != nil {
			return nil, fmt.Errorf("razorpay initialization failed: %w", err)
		}
		logger.Info("Payment gateway: razorpay", "test_mode", rc.IsTestMode())
		provider = p
	case "stripe":
		sc := billing.StripeConfig{APIKey: cfg.Stripe.SecretKey, WebhookSecret: cfg.Stripe.WebhookSecret}
		p, err := billing.NewStripeProvider(sc)
		if err != nil {
			return nil, fmt.Errorf("stripe initialization failed: %w", err)
		}
		logger.Info("Payment gateway: stripe", "test_mode", sc.IsTestMode())
		provider = p
	default:
		logger.Warn("Using mock payment provider; payments are simulated")
		provider = billing.NewMockProvider()
	}

	return billing.NewBreakerProvider(provider, billing.BreakerConfig{
		MaxRequests:         cfg.Payment.BreakerMaxRequests,
		Interval:            cfg.Payment.BreakerInterval,
		Timeout:             cfg.Payment.BreakerTimeout,
		ConsecutiveFailures: cfg.Payment.BreakerConsecutiveFailures,
	}, logger), nil
}

// newPlantCache connects to Redis when configured. Without Redis every
// catalog lookup goes to Postgres.
func newPlantCache(ctx context.Context, cfg internal.RedisConfig, logger *slog.Logger) (cache.PlantCache, func(), error) {
	if cfg.URL == "" {
		logger.Info("Plant cache disabled (REDIS_URL not set)")
		return cache.NopCache{}, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	rc := cache.NewRedisCache(client, cfg.PlantCacheTTL)
	if err := rc.Ping(ctx); err != nil {
		// The cache is advisory; run without it rather than refuse to start.
		logger.Warn("Redis unreachable, plant cache disabled", "error", err)
		client.Close()
		return cache.NopCache{}, func() {}, nil
	}
	logger.Info("Plant cache enabled", "ttl", cfg.PlantCacheTTL)
	return rc, func() { client.Close() }, nil
}

// newPublisher selects the broker the outbox relay publishes to.
func newPublisher(cfg internal.EventsConfig, logger *slog.Logger) (events.Publisher, error) {
	switch cfg.Broker {
	case "nats":
		p, err := events.NewNATSPublisher(cfg.NATSURL, cfg.SubjectPrefix)
		if err != nil {
			return nil, fmt.Errorf("nats connection failed: %w", err)
		}
		logger.Info("Publishing order events to NATS", "url", cfg.NATSURL, "prefix", cfg.SubjectPrefix)
		return p, nil
	case "kafka":
		logger.Info("Publishing order events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
		return events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...), nil
	default:
		logger.Info("Publishing order events to the log")
		return events.NewLogPublisher(logger), nil
	}
}

// newNotifier returns nil when no email channel is configured, which
// disables customer notifications in the relay.
func newNotifier(cfg internal.EmailConfig, logger *slog.Logger) (outbox.Notifier, error) {
	var sender email.Sender
	switch {
	case cfg.PostmarkToken != "":
		sender = email.NewPostmarkSender(cfg.PostmarkToken, cfg.From)
		logger.Info("Email notifications via Postmark")
	case cfg.Host != "":
		sender = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Host,
			Port:     int(cfg.Port),
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
			FromName: cfg.FromName,
		}, logger)
		logger.Info("Email notifications via SMTP", "host", cfg.Host, "port", cfg.Port)
	default:
		logger.Info("Email notifications disabled (SMTP_HOST and POSTMARK_API_TOKEN not set)")
		return nil, nil
	}

	notifier, err := email.NewNotifier(sender)
	if err != nil {
		return nil, fmt.Errorf("email initialization failed: %w", err)
	}
	return notifier, nil
}

func healthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			handler.JSON(w, http.StatusServiceUnavailable, handler.Envelope{"success": false, "status": "database unavailable"})
			return
		}
		handler.JSON(w, http.StatusOK, handler.Envelope{"success": true, "status": "ok"})
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
