package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"user-resource-api/config"
	"user-resource-api/internal"
	"user-resource-api/internal/infrastructure/db/postgres"
)

func main() {
	command := flag.String("cmd", "up", "goose command: up, up-by-one, down, redo, reset, status, version")
	flag.Parse()

	ctx := context.Background()

	if err := internal.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.LoadDB()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := internal.NewLogger(cfg.App)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	dsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	pool, err := postgres.New(ctx, logger, dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err = postgres.Migrate(ctx, pool, *command, flag.Args()...); err != nil {
		logger.Error("migration failed", zap.String("cmd", *command), zap.Error(err))
		pool.Close()
		os.Exit(1)
	}

	logger.Info("migration finished", zap.String("cmd", *command))
}
