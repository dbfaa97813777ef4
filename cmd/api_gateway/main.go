package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/api_gateway"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/api_gateway/service"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/config"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/data/postgres"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/pricing"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/logger"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize database with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	bookingRepo := postgres.NewBookingRepository(log, postgresDB)
	propertyRepo := postgres.NewPropertyRepository(log, postgresDB)
	ledgerRepo := postgres.NewLedgerRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)

	// Initialize services
	policy := pricing.Policy{
		TaxRate:                  cfg.Settlement.TaxRate,
		PlatformFeeRate:          cfg.Settlement.PlatformFeeRate,
		OwnerFaultDeductionRate:  cfg.Settlement.OwnerFaultDeductionRate,
		TenantFaultDeductionRate: cfg.Settlement.TenantFaultDeductionRate,
	}
	bookingService := service.NewBookingService(log, bookingRepo, propertyRepo, ledgerRepo, outboxRepo, postgresDB, policy)
	ledgerService := service.NewLedgerService(log, ledgerRepo)

	// Initialize REST server
	server := api_gateway.NewServer(log, cfg, bookingService, ledgerService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server before closing the connection pool
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
