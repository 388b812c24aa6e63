package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wiseman/studentrecords/internal/config"
	"github.com/wiseman/studentrecords/internal/pkg/logger"
)

// PostgresDB database connection structure
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB creates a new PostgreSQL connection pool
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connString := cfg.GetPostgresConnectionString()

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Store.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Store.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Store.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = maxLifetime

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

// Close releases the pool
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
