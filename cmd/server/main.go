package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lendora/screening-service/internal/application/usecase"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/internal/domain/service"
	"github.com/lendora/screening-service/internal/infrastructure/catalog"
	"github.com/lendora/screening-service/internal/infrastructure/config"
	infrakafka "github.com/lendora/screening-service/internal/infrastructure/kafka"
	infrapostgres "github.com/lendora/screening-service/internal/infrastructure/postgres"
	"github.com/lendora/screening-service/internal/infrastructure/provider"
	grpcpresentation "github.com/lendora/screening-service/internal/presentation/grpc"
	"github.com/lendora/screening-service/internal/presentation/rest"
	"github.com/lendora/screening-service/pkg/auth"
	pkgkafka "github.com/lendora/screening-service/pkg/kafka"
	"github.com/lendora/screening-service/pkg/observability"
	pkgpostgres "github.com/lendora/screening-service/pkg/postgres"
)

func main() {
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Service: "screening-service",
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	logger.Info("starting screening-service")

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "screening-service",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to PostgreSQL.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pkgpostgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(cfg.DatabaseURL, "file://"+cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("database schema current")

	// Initialize infrastructure adapters.
	producer := pkgkafka.NewProducer([]string{cfg.KafkaBroker})
	defer producer.Close()
	eventPublisher := infrakafka.NewPublisher(producer, "screening.events", logger)

	snapshotProvider := infrapostgres.NewSnapshotProvider(pool)
	directory := infrapostgres.NewApplicantDirectory(pool)
	screeningRepo := infrapostgres.NewScreeningRepository(pool)
	ruleCatalog := catalog.NewCachedCatalog(infrapostgres.NewRuleCatalog(pool), cfg.RuleCacheTTL)

	var externalClient port.ExternalScreeningClient
	if cfg.ExternalScreeningURL != "" {
		externalClient = provider.NewScreeningClient(cfg.ExternalScreeningAPIKey, cfg.ExternalScreeningURL, cfg.ExternalScreeningTimeout)
		logger.Info("external screening provider configured", slog.String("url", cfg.ExternalScreeningURL))
	} else {
		externalClient = provider.NewScreeningStub()
		logger.Warn("no external screening provider configured, using deterministic stub")
	}

	// Initialize domain services.
	identityRules := service.NewIdentityRuleSet(directory, cfg.EnableChecksumValidation, logger)
	employmentRules := service.NewEmploymentRuleSet(logger)
	scoringEngine := service.NewScoringEngine()

	metrics := observability.NewScreeningMetrics(prometheus.DefaultRegisterer)

	// Initialize use cases.
	detectIdentityUC := usecase.NewDetectIdentityFraud(snapshotProvider, ruleCatalog, identityRules)
	detectEmploymentUC := usecase.NewDetectEmploymentFraud(snapshotProvider, ruleCatalog, employmentRules)
	screenApplicantUC := usecase.NewPerformEnhancedScreening(
		snapshotProvider,
		ruleCatalog,
		identityRules,
		employmentRules,
		externalClient,
		cfg.ExternalScreeningTimeout,
		scoringEngine,
		screeningRepo,
		eventPublisher,
		metrics,
		logger,
	)
	getScreeningUC := usecase.NewGetScreening(screeningRepo)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: "lendora",
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize gRPC handler and server.
	grpcHandler := grpcpresentation.NewScreeningServiceHandler(
		detectIdentityUC,
		detectEmploymentUC,
		screenApplicantUC,
		getScreeningUC,
		logger,
	)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, jwtService, grpcpresentation.TLSFiles{
		CertFile: cfg.TLSCertFile,
		KeyFile:  cfg.TLSKeyFile,
	})

	// Initialize HTTP health and metrics server.
	healthHandler := rest.NewHealthHandler(logger)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("screening-service started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
		slog.Bool("checksum_validation", cfg.EnableChecksumValidation),
	)

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", slog.String("error", err.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down screening-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics provider shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("screening-service stopped")
}
