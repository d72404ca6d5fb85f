package storage

import (
	"context"
	"fmt"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/interfaces"
	"github.com/bobmcallan/wealthflow/internal/storage/badger"
	"github.com/bobmcallan/wealthflow/internal/storage/surrealdb"
)

// NewKeyValueStore opens the backend named in config.Storage.Backend.
// Supported backends: "badger" (default), "surrealdb", "file".
func NewKeyValueStore(ctx context.Context, logger *common.Logger, config *common.Config) (interfaces.KeyValueStore, error) {
	backend := config.Storage.Backend
	if backend == "" {
		backend = common.BackendBadger
	}

	switch backend {
	case common.BackendBadger:
		store, err := badger.NewStore(logger, config.Storage.Badger.Path)
		if err != nil {
			return nil, err
		}
		return badger.NewKVStorage(store, logger), nil

	case common.BackendSurrealDB:
		store, err := surrealdb.NewKVStore(ctx, logger, config.Storage.SurrealDB)
		if err != nil {
			return nil, err
		}
		return store, nil

	case common.BackendFile:
		store, err := NewFileStore(logger, config.Storage.File.Path)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: badger, surrealdb, file)", backend)
	}
}

// OpenGateway opens the configured backend and wraps it in a SnapshotGateway.
// A backend that cannot be opened is logged and the gateway runs without one.
func OpenGateway(ctx context.Context, logger *common.Logger, config *common.Config) *SnapshotGateway {
	store, err := NewKeyValueStore(ctx, logger, config)
	if err != nil {
		logger.Warn().Err(err).Str("backend", config.Storage.Backend).Msg("Storage unavailable, snapshots will not persist")
		store = nil
	}
	return NewSnapshotGateway(store, config.Storage.Key, logger)
}

// Close releases the underlying store.
func (g *SnapshotGateway) Close() error {
	if g.store == nil {
		return nil
	}
	return g.store.Close()
}
