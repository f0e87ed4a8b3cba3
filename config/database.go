package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database bundles the two handles the service uses against the same
// Postgres instance: GORM for model CRUD and a pgx pool for raw SQL.
type Database struct {
	Gorm *gorm.DB
	Pool *pgxpool.Pool

	log zerolog.Logger
}

// NewDatabase opens both connections and pings them.
func NewDatabase(ctx context.Context, cfg Config, log zerolog.Logger) (*Database, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	log.Info().Msg("✅ database connected (pgx)")

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         gormLogger,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database with GORM: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Info().Msg("✅ database connected (GORM)")

	return &Database{Gorm: db, Pool: pool, log: log}, nil
}

// Close releases both connections.
func (d *Database) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.Gorm != nil {
		if sqlDB, _ := d.Gorm.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}
	d.log.Info().Msg("database connections closed")
}

// WithTimeout returns a context with a 10s timeout (bumped from 5s for cold starts)
func WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 10*time.Second)
}
