package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/models"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type DB struct {
	*sql.DB
	logger *zap.Logger
}

// Connect establishes a connection to the PostgreSQL database
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, logger: logger}, nil
}

// InitializeTables creates all tables if they don't exist
func (db *DB) InitializeTables(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`); err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	for _, table := range models.Tables() {
		db.logger.Debug("creating table", zap.String("table", table.TableName()))
		if _, err := db.ExecContext(ctx, table.CreateTableSQL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.TableName(), err)
		}
	}

	if err := db.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db.logger.Info("all tables created")
	return nil
}

// migrations are applied in order on every start and must stay idempotent.
var migrations = []string{
	// Lookups used by search and the cart/order workflows
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products(lower(name));`,
	`CREATE INDEX IF NOT EXISTS idx_categories_title ON categories(lower(title));`,
	`CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id);`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id);`,

	// Columns added after the first release
	`ALTER TABLE customers ADD COLUMN IF NOT EXISTS phone VARCHAR(32) NOT NULL DEFAULT '';`,
	`ALTER TABLE products ADD COLUMN IF NOT EXISTS modified_at TIMESTAMP WITH TIME ZONE DEFAULT now();`,

	// Upper bound on cart lines
	`ALTER TABLE cart_items DROP CONSTRAINT IF EXISTS cart_items_quantity_max;`,
	`ALTER TABLE cart_items ADD CONSTRAINT cart_items_quantity_max CHECK (quantity <= 32767);`,
}

// runMigrations handles schema updates for existing tables. Unlike table
// creation, a failing migration aborts startup.
func (db *DB) runMigrations(ctx context.Context) error {
	for i, migration := range migrations {
		db.logger.Debug("running migration", zap.Int("number", i+1))
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}

	db.logger.Info("migrations completed", zap.Int("count", len(migrations)))
	return nil
}

// HealthCheck performs a simple health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
