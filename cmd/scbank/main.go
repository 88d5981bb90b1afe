package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"scbank/internal/amqp"
	"scbank/internal/assistant"
	"scbank/internal/catalog"
	"scbank/internal/cli"
	apphttp "scbank/internal/http"
	"scbank/internal/services"
	"scbank/internal/session"
	"scbank/internal/settings"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting scbank server")

	cfg := cli.LoadAndValidateConfig(logger)

	// SQLite holds the persisted preferences and the audit log.
	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	// AMQP is optional: without it audit entries stay local.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	store, err := settings.NewStore(context.Background(), sqliteRepo, cfg.PrefersDarkMode)
	if err != nil {
		logger.Error("Failed to load settings", "error", err)
		os.Exit(1)
	}

	cat := catalog.NewFromDir(cfg.DataDir)
	clock := session.SystemClock()
	sessions := session.NewManager(clock, []byte(cfg.JWTSecret), cfg.SessionTTL, cat.SeedReceipts())

	audit := services.NewAuditService(sqliteRepo, amqpClient)
	transfers := services.NewTransferService(cat, audit, clock)
	dispatcher := assistant.NewDispatcher(cat, transfers)

	// The utterance router needs a Gemini API key; explicit commands
	// keep working without one.
	var router *assistant.Router
	if cfg.GeminiAPIKey != "" {
		router, err = assistant.NewRouter(context.Background(), cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to initialize assistant router", "error", err)
			os.Exit(1)
		}
		logger.Info("Assistant router initialized", "model", cfg.GeminiModel)
	} else {
		logger.Info("Assistant router disabled - no GEMINI_API_KEY provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Sessions:     sessions,
		Catalog:      cat,
		Settings:     store,
		Transfers:    transfers,
		Audit:        audit,
		Assistant:    dispatcher,
		Router:       router,
		ExportPrefix: cfg.ExportPrefix,
		Clock:        clock,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := audit.Close(); err != nil {
			logger.Error("Audit service close error", "error", err)
		}
	})

	logger.Info("Starting scbank server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
