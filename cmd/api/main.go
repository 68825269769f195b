package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/api"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/audit"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/compliance"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/config"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/detection"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/face"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/fetch"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration; a missing provider credential stops startup here
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting ICAO photo check",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("face_provider", cfg.FaceProvider),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditLogger := audit.NewSlogLogger(logger)

	faceProvider, err := face.NewFaceProvider(ctx, cfg, auditLogger)
	if err != nil {
		return fmt.Errorf("failed to create face provider: %w", err)
	}

	policy := compliance.DefaultPolicy()
	policy.ComplianceThreshold = cfg.ComplianceThreshold
	policy.CloseBand = cfg.CloseBand

	fetcher := fetch.New(fetch.Config{
		Timeout:   cfg.FetchTimeout,
		MaxBytes:  cfg.MaxImageBytes,
		UserAgent: fetch.DefaultConfig().UserAgent,
	})
	adapter := detection.NewAdapter(faceProvider, logger,
		detection.WithTimeout(cfg.DetectionTimeout),
		detection.WithAuditLogger(auditLogger),
	)
	verificationService := service.NewVerificationService(fetcher, adapter, compliance.NewEngine(policy), logger).
		WithAuditLogger(auditLogger)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		VerificationService: verificationService,
		ProviderName:        faceProvider.Name(),
		MaxImageBytes:       cfg.MaxImageBytes,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")
	done := make(chan error, 1)
	go func() { done <- router.Shutdown() }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	case <-time.After(10 * time.Second):
		logger.Warn("shutdown timed out")
	}

	logger.Info("server stopped")

	return nil
}
