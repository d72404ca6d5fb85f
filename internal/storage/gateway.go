// Package storage persists AppState snapshots in a key-value store.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/interfaces"
	"github.com/bobmcallan/wealthflow/internal/models"
)

// DefaultSnapshotKey names the single record holding the snapshot.
const DefaultSnapshotKey = "wealthflow_state"

// SnapshotGateway saves and loads the user-free snapshot. It never fails loudly:
// save errors are logged and load problems fall back to the seed data.
type SnapshotGateway struct {
	store  interfaces.KeyValueStore
	key    string
	logger *common.Logger
	seed   func() *models.AppState
}

// NewSnapshotGateway creates a gateway over store. store may be nil when no backend
// could be opened; saves are then dropped and loads return the seed.
func NewSnapshotGateway(store interfaces.KeyValueStore, key string, logger *common.Logger) *SnapshotGateway {
	if key == "" {
		key = DefaultSnapshotKey
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &SnapshotGateway{store: store, key: key, logger: logger, seed: models.Seed}
}

// Save writes s without its user, overwriting the previous record.
func (g *SnapshotGateway) Save(ctx context.Context, s *models.AppState) {
	if err := g.save(ctx, s); err != nil {
		g.logger.Warn().Err(err).Str("key", g.key).Msg("Snapshot save failed")
		return
	}
	g.logger.Debug().Str("key", g.key).Msg("Snapshot saved")
}

func (g *SnapshotGateway) save(ctx context.Context, s *models.AppState) error {
	if g.store == nil {
		return errors.New("no storage backend available")
	}
	if s == nil {
		return errors.New("nil snapshot")
	}
	data, err := json.Marshal(s.WithoutUser())
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := g.store.Set(ctx, g.key, data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot with no user attached, or the seed when the record
// is missing, unreadable or corrupt.
func (g *SnapshotGateway) Load(ctx context.Context) *models.AppState {
	s, err := g.load(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			g.logger.Info().Str("key", g.key).Msg("No saved snapshot, starting from seed data")
		} else {
			g.logger.Warn().Err(err).Str("key", g.key).Msg("Snapshot load failed, starting from seed data")
		}
		return g.seed()
	}
	return s
}

func (g *SnapshotGateway) load(ctx context.Context) (*models.AppState, error) {
	if g.store == nil {
		return nil, errors.New("no storage backend available")
	}
	data, err := g.store.Get(ctx, g.key)
	if err != nil {
		return nil, err
	}
	var s models.AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}
	s.User = nil
	return &s, nil
}
