// Package sqlite provides a GORM-backed SQLite client.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	sqliteopts "github.com/kart-io/shopbot/pkg/options/sqlite"
)

// Client wraps gorm.DB for the product catalog database.
type Client struct {
	db   *gorm.DB
	opts *sqliteopts.Options
}

// New creates a new SQLite client from the provided options.
func New(opts *sqliteopts.Options) (*Client, error) {
	return NewWithContext(context.Background(), opts)
}

// NewWithContext creates a new SQLite client with context support. The
// context bounds the initial ping verification.
func NewWithContext(ctx context.Context, opts *sqliteopts.Options) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("sqlite options cannot be nil")
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	gormLogger := logger.Default
	switch opts.LogLevel {
	case 1: // Silent
		gormLogger = logger.Default.LogMode(logger.Silent)
	case 2: // Error
		gormLogger = logger.Default.LogMode(logger.Error)
	case 3: // Warn
		gormLogger = logger.Default.LogMode(logger.Warn)
	case 4: // Info
		gormLogger = logger.Default.LogMode(logger.Info)
	default:
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(opts.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &Client{
		db:   db,
		opts: opts,
	}, nil
}

// Name returns the storage type identifier.
func (c *Client) Name() string {
	return "sqlite"
}

// Ping checks if the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// DB returns the underlying gorm.DB instance.
func (c *Client) DB() *gorm.DB {
	return c.db
}

// SqlDB returns the underlying sql.DB instance.
func (c *Client) SqlDB() (*sql.DB, error) {
	return c.db.DB()
}
