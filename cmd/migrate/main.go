package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/config"
	"github.com/spec-kit/hris-service/internal/observability"
	"github.com/spec-kit/hris-service/internal/persistence"
)

func main() {
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.Postgres.Configured() {
		logger.Fatal("POSTGRES_DSN missing or placeholder")
	}

	m, err := persistence.NewMigrator(cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("failed to open migrations", zap.Error(err))
	}
	defer m.Close()

	if err := persistence.Migrate(m, action, logger); err != nil {
		logger.Fatal("migration failed", zap.String("action", action), zap.Error(err))
	}
	logger.Info("migration completed", zap.String("action", action))
}
