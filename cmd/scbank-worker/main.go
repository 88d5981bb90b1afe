package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"scbank/internal/amqp"
	"scbank/internal/cli"
	"scbank/internal/sheets"
	gsheet "scbank/internal/sheets/google"
	mem "scbank/internal/sheets/memory"
	"scbank/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting scbank-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// SQLite is the source of truth; the worker only reads from it.
	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	// Mirror destination: Google Sheets when configured, otherwise an
	// in-memory mirror that keeps the consume loop exercised locally.
	var mirror sheets.AuditMirror
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		mirror = sheetsClient
		logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		mirror = mem.New()
		logger.Info("Google Sheets disabled - using in-memory mirror")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	auditWorker := worker.NewAuditWorker(sqliteRepo, mirror)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catch up on entries written while the worker was down.
	logger.Info("Performing startup sync check...")
	if err := auditWorker.StartupSyncCheck(ctx, cfg.SyncBatchSize); err != nil {
		logger.Error("Startup sync check failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeAuditSync(ctx, func(msg *amqp.AuditSyncMessage) error {
			return auditWorker.HandleSyncMessage(ctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := auditWorker.StartupSyncCheck(ctx, cfg.SyncBatchSize); err != nil {
					logger.Error("Periodic sync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
