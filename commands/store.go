package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/database"
	"github.com/shadighanaat/DRF-store/database/memstore"
	"github.com/shadighanaat/DRF-store/datastore"
)

// openStore returns the configured store and a function releasing it.
// Postgres tables are created on open.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (datastore.Store, func(), error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("using in-memory store, data is lost on exit")
		return memstore.New(), func() {}, nil
	}

	db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.InitializeTables(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	logger.Info("connected to database")
	return database.NewStore(db), func() { db.Close() }, nil
}
