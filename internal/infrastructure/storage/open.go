package storage

import (
	"context"
	"fmt"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/ports"
)

// Open builds the used-URL store selected by cfg.Driver. The returned close
// function is always safe to call.
func Open(ctx context.Context, cfg config.StorageConfig) (ports.UsedURLStore, func() error, error) {
	switch cfg.Driver {
	case config.StorageJSON, "":
		return NewJSONStore(cfg.Path), func() error { return nil }, nil
	case config.StorageSQLite:
		store, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
