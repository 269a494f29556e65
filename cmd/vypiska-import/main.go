package main

import (
	"context"
	"flag"
	"os"
	"time"

	"vypiska/internal/cli"
	"vypiska/internal/ingest"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	file := flag.String("file", "", "path to the statement CSV export")
	flag.Parse()

	if *file == "" {
		logger.Error("Usage: vypiska-import -file <statement.csv>")
		os.Exit(1)
	}

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("Failed to open statement file", "error", err, "file", *file)
		os.Exit(1)
	}
	defer f.Close()

	result, err := ingest.ParseStatement(f)
	if err != nil {
		logger.Error("Failed to parse statement", "error", err, "file", *file)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	inserted, err := repo.InsertTransactions(ctx, result.Records)
	if err != nil {
		logger.Error("Failed to store transactions", "error", err)
		os.Exit(1)
	}

	logger.Info("Statement imported",
		"file", *file,
		"inserted", inserted,
		"skipped", result.Skipped,
		"db", cfg.SQLiteDBPath)
}
