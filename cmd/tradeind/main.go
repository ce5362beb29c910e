package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/usecase"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/config"
	infrakafka "github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/kafka"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/metrics"
	grpcpresentation "github.com/arinherbz/chat-interferes-sub000/internal/presentation/grpc"
	"github.com/arinherbz/chat-interferes-sub000/internal/presentation/rest"
	"github.com/arinherbz/chat-interferes-sub000/pkg/auth"
	pkgkafka "github.com/arinherbz/chat-interferes-sub000/pkg/kafka"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
	"github.com/arinherbz/chat-interferes-sub000/pkg/observability"
	"github.com/arinherbz/chat-interferes-sub000/pkg/tlsutil"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting tradeind",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"storage", cfg.Storage.Driver,
	)

	// Tracing is optional.
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    true,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("tracer shutdown error", "error", err)
				}
			}()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()
	engineMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Reference data and storage.
	cat, err := loadCatalog(cfg.Engine)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	currency, err := money.NewCurrency(cfg.Engine.Currency)
	if err != nil {
		logger.Error("invalid currency", "error", err)
		os.Exit(1)
	}
	if currency != cat.Currency() {
		logger.Warn("catalog currency differs from CURRENCY", "catalog", cat.Currency().Code(), "configured", currency.Code())
	}

	storeCtx, storeCancel := context.WithTimeout(ctx, 30*time.Second)
	st, err := openStorage(storeCtx, cfg, cat, logger)
	storeCancel()
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer st.close()

	publisher, releasePublisher, err := newPublisher(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer releasePublisher()

	// Wire use cases.
	useCases := usecase.NewSet(usecase.Dependencies{
		Assessments: st.assessments,
		AuditLog:    st.auditLog,
		Blocklist:   st.blocklist,
		Reference:   st.reference,
		Publisher:   publisher,
		Metrics:     engineMetrics,
		Logger:      logger,
		Policy: usecase.Policy{
			Currency:       currency,
			PrimaryBrand:   cfg.Engine.PrimaryBrand,
			RequireAnswers: cfg.Engine.RequireAnswers,
		},
	})

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
	})
	if err != nil {
		logger.Error("failed to create JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcServer, err := grpcpresentation.NewServer(
		grpcpresentation.NewTradeInHandler(useCases, logger),
		grpcpresentation.ServerConfig{
			Address: cfg.GRPCAddress(),
			TLS: tlsutil.ServerConfig{
				CertFile:     cfg.TLS.CertFile,
				KeyFile:      cfg.TLS.KeyFile,
				ClientCAFile: cfg.TLS.ClientCAFile,
			},
			Reflection: cfg.Reflection,
		},
		logger,
		jwtService,
	)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	var limiter *rest.RateLimiter
	if cfg.HTTP.RateLimitRPS > 0 {
		limiter = rest.NewRateLimiter(cfg.HTTP.RateLimitRPS)
		go sweepLimiter(ctx, limiter)
	}
	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.NewRouter(rest.RouterConfig{
			API:     rest.NewTradeInHandler(useCases, logger),
			Health:  rest.NewHealthHandler(logger, st.checks),
			Metrics: metricsHandler,
			Limiter: limiter,
			JWT:     jwtService,
			Logger:  logger,
			Timeout: cfg.HTTP.RequestTimeout,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.HTTP.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if cfg.Kafka.BlocklistTopic != "" {
		feed := infrakafka.NewBlocklistFeed(useCases.BlockIdentity, logger)
		consumer, err := pkgkafka.NewConsumer(kafkaConfig(cfg.Kafka), cfg.Kafka.BlocklistTopic, feed.Handle, logger)
		if err != nil {
			logger.Error("failed to create blocklist consumer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = consumer.Close() }()

		go func() {
			if err := consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("blocklist consumer error: %w", err)
			}
		}()
	}

	logger.Info("tradeind started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
		cancel()
	}

	// Graceful shutdown.
	logger.Info("shutting down tradeind")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("tradeind stopped")
}

// sweepLimiter drops idle rate limit buckets until ctx is done.
func sweepLimiter(ctx context.Context, limiter *rest.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep(5 * time.Minute)
		}
	}
}
