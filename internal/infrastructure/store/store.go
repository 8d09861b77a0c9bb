// Package store opens the record store named by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/itcguard/itc-api/internal/domain/repository"
	"github.com/itcguard/itc-api/internal/infrastructure/bolt"
	"github.com/itcguard/itc-api/internal/infrastructure/postgres"
	"github.com/itcguard/itc-api/pkg/config"
)

// Open returns the repository and a function releasing its resources.
// Postgres schemas are migrated on open.
func Open(ctx context.Context, cfg *config.Config) (repository.TaxRecordRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewTaxRecordRepository(pool), pool.Close, nil
	case config.DriverBolt:
		s, err := bolt.Open(cfg.Store.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}
