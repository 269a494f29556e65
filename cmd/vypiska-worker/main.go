package main

import (
	"context"
	"os"

	"vypiska/internal/amqp"
	"vypiska/internal/cli"
	"vypiska/internal/reportstore"
	"vypiska/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting vypiska-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the report worker")
		os.Exit(1)
	}

	store := reportstore.New(cfg.ReportDir)
	reportWorker := worker.NewReportWorker(store)

	ctx, cancel := cli.SignalContext()
	defer cancel()

	logger.Info("Consuming report snapshots",
		"queue", cfg.AMQPQueue,
		"report_dir", cfg.ReportDir)

	err := amqp.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, reportWorker.HandleReport)
	if err != nil && err != context.Canceled {
		logger.Error("Report consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
