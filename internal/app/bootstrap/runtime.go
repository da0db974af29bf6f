// Package bootstrap builds runtime dependencies shared by the binaries.
package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/okravets/barberflow/internal/config"
	"github.com/okravets/barberflow/internal/session"
	"github.com/okravets/barberflow/pkg/logging"
)

// BuildPgxPool connects to Postgres and verifies the connection.
func BuildPgxPool(ctx context.Context, cfg *appconfig.Config) (*pgxpool.Pool, error) {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("bootstrap: DATABASE_URL is required")
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	return pool, nil
}

// BuildRedisClient creates a Redis client, or nil when Redis is not
// configured or unreachable. Callers fall back to in-memory stores on nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("bootstrap: redis not available", "error", err)
		return nil
	}
	return client
}

// BuildSessionStore picks Redis-backed sessions when a client is available
// and falls back to process-local memory otherwise.
func BuildSessionStore(client *redis.Client, cfg *appconfig.Config, logger *logging.Logger) session.Store {
	if client == nil {
		if logger != nil {
			logger.Warn("bootstrap: using in-memory session store; sessions will not survive restarts")
		}
		return session.NewMemoryStore()
	}
	return session.NewRedisStore(client, cfg.SessionTTL)
}
