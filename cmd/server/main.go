// Package main is the entry point for the notification service. It wires all
// dependencies using samber/do v2, starts the HTTP server with the capture
// pipeline, and handles graceful shutdown on SIGINT/SIGTERM, draining the
// dispatcher queue before exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"

	"github.com/den5hade/notification/internal/adapters/clients/logstore"
	"github.com/den5hade/notification/internal/adapters/clients/mailer"
	adapthttp "github.com/den5hade/notification/internal/adapters/http"
	"github.com/den5hade/notification/internal/adapters/http/handlers"
	"github.com/den5hade/notification/internal/adapters/http/middleware"
	"github.com/den5hade/notification/internal/app"
	"github.com/den5hade/notification/internal/app/dispatch"
	"github.com/den5hade/notification/internal/domain/redact"
	"github.com/den5hade/notification/internal/platform/config"
	"github.com/den5hade/notification/internal/platform/health"
	"github.com/den5hade/notification/internal/platform/httpclient"
	"github.com/den5hade/notification/internal/platform/logging"
	"github.com/den5hade/notification/internal/platform/telemetry"
	"github.com/den5hade/notification/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serviceVersion = "1.0.0"

	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; real environments set variables
	// through the deployment platform.
	_ = godotenv.Load()

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	httpClient := do.MustInvoke[*httpclient.Client](injector)
	registry.Register(httpClient)

	// Background retention job.
	retention := do.MustInvoke[*app.RetentionJob](injector)
	if err := retention.Start(); err != nil {
		return fmt.Errorf("starting retention job: %w", err)
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests first so every captured entry
	// reaches the dispatcher before it is asked to drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Stop the retention scheduler.
	if err := retention.Stop(shutdownCtx); err != nil {
		logger.Error("retention job shutdown error", slog.Any("error", err))
	}

	// Drain the dispatcher queue.
	dispatcher := do.MustInvoke[ports.EntryDispatcher](injector)
	drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.Dispatch.ShutdownTimeout)
	defer drainCancel()

	if err := dispatcher.Shutdown(drainCtx); err != nil {
		logger.Error("dispatcher shutdown error", slog.Any("error", err))
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// Redaction pipeline components.
	do.Provide(injector, func(_ do.Injector) (*redact.FieldPatterns, error) {
		return redact.NewFieldPatterns(), nil
	})

	do.Provide(injector, func(i do.Injector) (*redact.Sanitizer, error) {
		patterns := do.MustInvoke[*redact.FieldPatterns](i)
		return redact.NewSanitizer(patterns, cfg.Capture.MaxBodySize), nil
	})

	// Outbound clients.
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.LogStore, "logstore", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.LogStore, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return logstore.NewClient(client, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.NotificationSender, error) {
		if cfg.SMTP.Host == "" {
			logger.Warn("smtp host not configured, notification sends will fail")
			return mailer.Disabled{}, nil
		}
		return mailer.New(cfg.SMTP, logger)
	})

	// Application services.
	do.Provide(injector, func(i do.Injector) (ports.EntryDispatcher, error) {
		store := do.MustInvoke[ports.LogStore](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return dispatch.NewDispatcher(store, cfg.Dispatch, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.LogQueryService, error) {
		store := do.MustInvoke[ports.LogStore](i)
		return app.NewLogQueryService(store, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.NotificationService, error) {
		sender := do.MustInvoke[ports.NotificationSender](i)
		return app.NewNotificationService(sender, cfg.SMTP.SupportAddress, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.RetentionJob, error) {
		logs := do.MustInvoke[ports.LogQueryService](i)
		return app.NewRetentionJob(logs, cfg.Retention, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	// Inbound handlers.
	do.Provide(injector, func(i do.Injector) (*handlers.LogHandler, error) {
		logs := do.MustInvoke[ports.LogQueryService](i)
		return handlers.NewLogHandler(logs), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.NotificationHandler, error) {
		svc := do.MustInvoke[ports.NotificationService](i)
		return handlers.NewNotificationHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(_ do.Injector) (*handlers.RootHandler, error) {
		return handlers.NewRootHandler(cfg.Capture.ServiceName, serviceVersion), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		logH := do.MustInvoke[*handlers.LogHandler](i)
		notifH := do.MustInvoke[*handlers.NotificationHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		rootH := do.MustInvoke[*handlers.RootHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		patterns := do.MustInvoke[*redact.FieldPatterns](i)
		sanitizer := do.MustInvoke[*redact.Sanitizer](i)
		dispatcher := do.MustInvoke[ports.EntryDispatcher](i)

		chain := middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Capture(cfg.Capture, patterns, sanitizer, dispatcher, logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		)

		return adapthttp.NewRouter(logH, notifH, healthH, rootH, chain), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
