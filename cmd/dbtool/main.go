package main

import (
	"context"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"parts-matching-client/internal/adapters/sessionstore"
	"parts-matching-client/internal/config"
	"parts-matching-client/internal/platform/db"
	"parts-matching-client/internal/platform/obs"
)

// dbtool creates the shared session table for the postgres (or sqlite)
// session backend.
func main() {
	logger, flush, err := obs.NewLogger(false)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer flush()

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend := config.Get("DBTOOL_BACKEND", "postgres")
	switch backend {
	case "postgres":
		if strings.TrimSpace(cfg.Session.DatabaseURL) == "" {
			logger.Fatal("DATABASE_URL is required")
		}
		conn, err := db.Open(cfg.Session.DatabaseURL)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		defer conn.Close()
		initSchema(ctx, logger, func(ctx context.Context) error { return sessionstore.InitSchema(ctx, conn) })

	case "sqlite":
		conn, err := db.OpenSQLite(cfg.Session.Path)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		defer conn.Close()
		initSchema(ctx, logger, func(ctx context.Context) error { return sessionstore.InitSchema(ctx, conn) })

	default:
		logger.Fatal("unsupported backend", zap.String("backend", backend))
	}
}

func initSchema(ctx context.Context, logger *zap.Logger, run func(context.Context) error) {
	logger.Info("initializing session schema")
	if err := run(ctx); err != nil {
		logger.Fatal("schema initialization failed", zap.Error(err))
	}
	logger.Info("schema ready")
}
