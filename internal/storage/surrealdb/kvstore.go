package surrealdb

import (
	"context"
	"fmt"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/interfaces"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

const kvTable = "app_kv"

// kvRecord is one row of the app_kv table. Value holds the raw payload as text.
type kvRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// KVStore implements interfaces.KeyValueStore on a SurrealDB table.
type KVStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewKVStore connects, signs in and selects the namespace/database from config.
func NewKVStore(ctx context.Context, logger *common.Logger, config common.SurrealDBConfig) (*KVStore, error) {
	db, err := surrealdb.New(config.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Username,
		"pass": config.Password,
	}); err != nil {
		db.Close(context.Background())
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Namespace, config.Database); err != nil {
		db.Close(context.Background())
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// SurrealDB v3 errors on querying non-existent tables
	sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", kvTable)
	if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
		db.Close(context.Background())
		return nil, fmt.Errorf("failed to define table %s: %w", kvTable, err)
	}

	logger.Info().
		Str("address", config.Address).
		Str("namespace", config.Namespace).
		Str("database", config.Database).
		Msg("SurrealDB key-value store initialized")

	return newKVStoreWithDB(db, logger), nil
}

func newKVStoreWithDB(db *surrealdb.DB, logger *common.Logger) *KVStore {
	return &KVStore{db: db, logger: logger}
}

// Get returns the stored payload, or an error wrapping interfaces.ErrNotFound.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	rec, err := surrealdb.Select[kvRecord](ctx, s.db, surrealmodels.NewRecordID(kvTable, key))
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", key, err)
	}
	if rec == nil || rec.Key == "" {
		return nil, fmt.Errorf("%s: %w", key, interfaces.ErrNotFound)
	}
	return []byte(rec.Value), nil
}

// Set upserts the payload under key, retrying transient write conflicts.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	sql := "UPSERT type::record($tb, $id) CONTENT $kv"
	vars := map[string]any{
		"tb": kvTable,
		"id": key,
		"kv": kvRecord{Key: key, Value: string(value)},
	}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]kvRecord](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to set %s after retries: %w", key, err)
		}
		s.logger.Debug().Err(err).Int("attempt", attempt).Str("key", key).Msg("Retrying SurrealDB upsert")
	}
	return nil
}

// Close releases the connection.
func (s *KVStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close(context.Background())
	s.db = nil
	return err
}

var _ interfaces.KeyValueStore = (*KVStore)(nil)
