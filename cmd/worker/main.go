package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/messaging/outbox"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
)

// The worker relays outbox_events rows to Kafka.
func main() {
	if err := run(); err != nil {
		slog.Error("Worker stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).
		With(slog.String("app", "hris-payroll-worker"), slog.String("env", cfg.App.Env))
	slog.SetDefault(logger)

	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required for the outbox worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: 4})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	writer := outbox.NewKafkaWriter(cfg.Kafka.Brokers)
	defer writer.Close()

	relay := outbox.NewRelay(postgresql.NewOutboxRepository(db), writer, cfg.Kafka.TopicPrefix, cfg.Kafka.RelayBatch, logger)

	scheduler := cron.NewScheduler(logger)
	cron.NewOutboxJobs(relay, cfg.Kafka.RelayBatch).RegisterJobs(scheduler, cfg.Kafka.RelayInterval)
	scheduler.Start(ctx)

	<-ctx.Done()
	logger.Info("Worker shutting down")
	scheduler.Stop()
	return nil
}
