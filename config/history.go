package config

import (
	"context"
	"fmt"

	"github.com/mwantia/argtree/history"
	"github.com/mwantia/argtree/history/consul"
	"github.com/mwantia/argtree/history/memory"
	"github.com/mwantia/argtree/history/postgres"
	"github.com/mwantia/argtree/history/s3"
	"github.com/mwantia/argtree/history/sqlite"
)

// OpenHistory opens the store named by address, see history.ParseAddress.
func OpenHistory(ctx context.Context, address string) (history.Store, error) {
	addr, err := history.ParseAddress(address)
	if err != nil {
		return nil, err
	}

	switch addr.Scheme {
	case history.SchemeMemory:
		return memory.NewMemoryStore(memory.DefaultLimit), nil

	case history.SchemeSQLite:
		store, err := sqlite.NewSQLiteStore(addr.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite history '%s': %w", addr.Path, err)
		}
		return store, nil

	case history.SchemePostgres:
		store, err := postgres.NewPostgresStore(ctx, addr.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres history: %w", err)
		}
		return store, nil

	case history.SchemeConsul:
		store, err := consul.NewConsulStore(&consul.ConsulStoreConfig{
			Address: addr.Host,
			Token:   addr.Token,
			Prefix:  addr.Path,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open consul history '%s': %w", addr.Host, err)
		}
		return store, nil

	case history.SchemeS3:
		store, err := s3.NewS3Store(addr.Host, addr.Path, addr.AccessKey, addr.SecretKey, addr.Prefix, addr.SSL)
		if err != nil {
			return nil, fmt.Errorf("failed to open s3 history '%s': %w", addr.Host, err)
		}
		if err := store.Open(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	return nil, fmt.Errorf("failed to open history '%s': %w", address, history.ErrUnknownScheme)
}
