package main

import (
	"context"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/config"
	"github.com/nekogravitycat/club-booking-backend/internal/db"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/mq"
	"github.com/nekogravitycat/club-booking-backend/internal/reaper"
)

// The worker runs the expired-hold reaper as a Temporal cron workflow.
// Start the API with REAPER_MODE=temporal when this worker is deployed.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, nil)
	if cfg.IsProduction {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Connect to database
	logger.Info("connecting to database")
	pool, err := db.NewPool(ctx, cfg.DBDSN, db.PoolOptions{MaxConns: 2})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var publisher mq.Publisher = mq.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := mq.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		publisher = p
	}
	defer publisher.Close()

	holdReaper := reaper.New(booking.NewPgxRepository(pool), publisher, cfg.ReaperInterval, logger)

	// Connect to Temporal
	logger.Info("connecting to temporal", "host", cfg.TemporalHost)
	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
		Logger:   tlog.NewStructuredLogger(logger),
	})
	if err != nil {
		logger.Error("failed to connect to temporal", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	reaper.Register(w, reaper.NewActivities(holdReaper))

	if err := reaper.StartSchedule(ctx, c, cfg.TemporalTaskQueue); err != nil {
		logger.Error("failed to start reaper schedule", "error", err)
		os.Exit(1)
	}

	logger.Info("starting temporal worker", "task_queue", cfg.TemporalTaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("worker failed", "error", err)
		os.Exit(1)
	}
}
