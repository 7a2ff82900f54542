package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/cartwheel-io/storefront/internal/cart"
	"github.com/cartwheel-io/storefront/internal/catalog"
	"github.com/cartwheel-io/storefront/internal/config"
	"github.com/cartwheel-io/storefront/internal/event"
	handler "github.com/cartwheel-io/storefront/internal/handler/http"
	"github.com/cartwheel-io/storefront/internal/metrics"
	"github.com/cartwheel-io/storefront/internal/service"
	"github.com/cartwheel-io/storefront/pkg/health"
	pkgkafka "github.com/cartwheel-io/storefront/pkg/kafka"
	"github.com/cartwheel-io/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	producer       *pkgkafka.Producer
	relay          *event.Relay
	relayCancel    context.CancelFunc
	httpServer     *http.Server
	baseCancel     context.CancelFunc
	tracerShutdown func(context.Context) error
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

	// Build the dependency graph. The catalog and cart live in memory for
	// the lifetime of the process.
	cat := catalog.New()
	store := cart.NewStore()
	cartService := service.NewCartService(cat, store, logger)
	metrics.BindCart(store)

	healthHandler := health.NewHandler()

	// Kafka cart event publishing is optional. When enabled, a relay
	// mirrors every cart snapshot onto the cart.updated topic.
	var (
		producer *pkgkafka.Producer
		relay    *event.Relay
	)
	if cfg.CartEventsEnabled {
		kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		producer = pkgkafka.NewProducer(kafkaCfg, logger)
		if err := pingKafkaWithRetry(ctx, producer, logger); err != nil {
			logger.Warn("kafka producer ping failed after retries, continuing in degraded mode",
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
		}

		eventProducer := event.NewProducer(producer, logger)
		relay = event.NewRelay(eventProducer, logger)
		relay.Bind(store.Lines())

		healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
			return producer.Ping(ctx)
		})
	}

	// HTTP router.
	router := handler.NewRouter(cartService, cat, store, healthHandler, logger, handler.RouterConfig{
		Environment:        cfg.Environment,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		PprofAllowedCIDRs:  cfg.PprofAllowedCIDRs,
		StreamHeartbeat:    cfg.StreamHeartbeat(),
	})

	// baseCtx is the parent of every request context. Canceling it on
	// shutdown ends the open cart streams so the HTTP drain can finish.
	baseCtx, baseCancel := context.WithCancel(context.Background())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// WriteTimeout stays 0: the cart stream holds its response open
		// indefinitely and a server-wide write deadline would sever it.
		// Non-streaming routes are bounded by the router's timeout
		// middleware instead.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		producer:       producer,
		relay:          relay,
		httpServer:     httpServer,
		baseCancel:     baseCancel,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and the event relay, then blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	// Start the cart event relay. Its context is independent of the signal
	// context so Shutdown controls when it stops.
	if a.relay != nil {
		relayCtx, relayCancel := context.WithCancel(context.Background())
		a.relayCancel = relayCancel
		go a.relay.Run(relayCtx)
	}

	// Start HTTP server.
	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. Request base context (ends open cart streams)
// 2. HTTP server (drain in-flight requests)
// 3. Tracer (flush pending spans from drained requests)
// 4. Event relay
// 5. Kafka producer
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. End open streams so the drain below does not wait on them.
	a.baseCancel()

	// 2. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 3. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 4. Stop the relay worker, then detach it from the feed.
	if a.relay != nil && a.relayCancel != nil {
		a.relayCancel()
		a.relay.Close()
	}

	// 5. Close Kafka producer (2s budget).
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// pingKafkaWithRetry attempts to ping the Kafka producer with exponential
// backoff (3 attempts, 1s/2s/4s with ±25% jitter).
func pingKafkaWithRetry(ctx context.Context, producer *pkgkafka.Producer, logger *slog.Logger) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := producer.Ping(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt < 2 {
			base := time.Duration(1<<uint(attempt)) * time.Second
			jitter := time.Duration(float64(base) * 0.25 * (2*rand.Float64() - 1)) // #nosec G404 -- non-cryptographic jitter for retry backoff
			wait := base + jitter
			logger.Warn("kafka producer ping failed, retrying",
				slog.Int("attempt", attempt+1),
				slog.Int("max_attempts", 3),
				slog.Duration("backoff", wait),
				slog.String("error", lastErr.Error()),
			)
			select {
			case <-ctx.Done():
				return fmt.Errorf("kafka ping: context canceled during retry: %w", ctx.Err())
			case <-time.After(wait):
			}
		}
	}
	return fmt.Errorf("kafka producer ping failed after 3 attempts: %w", lastErr)
}
