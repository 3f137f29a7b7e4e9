package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/app"
	"github.com/nekogravitycat/club-booking-backend/internal/config"
	"github.com/nekogravitycat/club-booking-backend/internal/db"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/mq"
)

func newLogger(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.IsProduction)
	slog.SetDefault(logger)

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, db.PoolOptions{MaxConns: int32(cfg.DBMaxConns)})
	if err != nil {
		logger.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Booking events are optional.
	var publisher mq.Publisher = mq.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := mq.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		publisher = p
		logger.Info("publishing booking events", "exchange", cfg.AMQPExchange)
	}
	defer publisher.Close()

	container, err := app.NewContainer(app.Config{
		IsProduction:         cfg.IsProduction,
		ProdOrigins:          cfg.ProdOrigins,
		DBPool:               pool,
		Logger:               logger,
		JWTSecret:            cfg.JWTSecret,
		JWTTTL:               cfg.JWTAccessTokenTTL,
		BcryptCost:           cfg.BcryptCost,
		Location:             cfg.VenueTimezone,
		MinLead:              cfg.BookingMinLead,
		DefaultOpenTime:      cfg.DefaultOpenTime,
		DefaultCloseTime:     cfg.DefaultCloseTime,
		HoldTTL:              cfg.HoldTTL,
		SelectionIdleTTL:     cfg.SelectionIdleTTL,
		InProcessReaper:      cfg.ReaperMode == config.ReaperInProcess,
		ReaperInterval:       cfg.ReaperInterval,
		Publisher:            publisher,
		PaymentWebhookSecret: cfg.PaymentWebhookSecret,
	})
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	// Background loops stop with ctx.
	container.Start(ctx)
	logger.Info("hold reaper mode", "mode", cfg.ReaperMode)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info("server running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited gracefully")
}
