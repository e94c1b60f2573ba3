package main

import (
	"context"
	"errors"
	"os"

	"neotrack/internal/amqp"
	"neotrack/internal/cli"
	applog "neotrack/internal/log"
	gsheet "neotrack/internal/sheets/google"
	"neotrack/internal/worker"
)

func main() {
	cfg, logger := cli.MustLoadConfig()
	if err := cfg.ValidateWorker(); err != nil {
		logger.Error("Worker configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Starting neotrack-worker")

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	sheetsClient, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
		os.Exit(1)
	}
	if err := sheetsClient.EnsureHeader(ctx); err != nil {
		logger.Error("Failed to prepare sheet header", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	mirror := worker.NewMirrorWorker(sheetsClient, logger)

	// catch up on events lost while the worker was down
	store, closeStore, err := cli.OpenLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger for startup sync", applog.FieldError, err)
	} else {
		if err := mirror.StartupSyncCheck(ctx, store.Transactions()); err != nil {
			logger.Error("Failed startup sync check", applog.FieldError, err)
		}
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close ledger storage", applog.FieldError, err)
		}
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	logger.Info("Consuming ledger events", "queue", cfg.AMQPQueue)
	if err := amqpClient.ConsumeLedgerEvents(ctx, mirror.HandleLedgerEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
