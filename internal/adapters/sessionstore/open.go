package sessionstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"parts-matching-client/internal/config"
	"parts-matching-client/internal/platform/db"
	"parts-matching-client/internal/ports"
)

// Open builds the configured SessionStore. The returned close func releases
// any database or Redis connection.
func Open(ctx context.Context, cfg config.SessionConfig) (ports.SessionStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), noop, nil

	case "file":
		return NewFileStore(cfg.Path), noop, nil

	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("open session store: create dir: %w", err)
		}
		conn, err := db.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		if err := InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return NewSqliteStore(conn), conn.Close, nil

	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return NewSQLStore(conn), conn.Close, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("open session store: ping redis %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(rdb, cfg.RedisTTL), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("open session store: unknown backend %q", cfg.Backend)
	}
}
