package store

import (
	"context"

	"github.com/ctdp-app/ctdp/internal/config"
)

// Open returns the DB selected by the storage section of cfg.
func Open(ctx context.Context, cfg *config.Config) (DB, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return NewSQLite(ctx, cfg.StorageDSN())
	case config.DriverPostgres:
		return NewPostgres(ctx, cfg.StorageDSN())
	default:
		return NewBoltDB(cfg.StorageDSN())
	}
}
