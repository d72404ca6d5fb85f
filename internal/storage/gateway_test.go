package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/models"
	"github.com/bobmcallan/wealthflow/internal/services/ledger"
	tcommon "github.com/bobmcallan/wealthflow/test/common"
)

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

func jsonOf(t *testing.T, s *models.AppState) string {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return string(data)
}

func TestGateway_RoundTripStripsUser(t *testing.T) {
	store := tcommon.NewMockKVStore()
	gw := NewSnapshotGateway(store, "", testLogger())
	ctx := context.Background()

	s := ledger.AttachUser(models.Seed(), models.SeedUser)
	require.NotNil(t, s.User)

	gw.Save(ctx, s)

	raw, ok := store.Raw(DefaultSnapshotKey)
	require.True(t, ok)
	var stored map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, "null", string(stored["user"]))

	loaded := gw.Load(ctx)
	assert.Nil(t, loaded.User)
	assert.Equal(t, jsonOf(t, s.WithoutUser()), jsonOf(t, loaded))

	// Saving does not touch the caller's snapshot
	assert.NotNil(t, s.User)
}

func TestGateway_MissingRecordFallsBackToSeed(t *testing.T) {
	gw := NewSnapshotGateway(tcommon.NewMockKVStore(), "custom_key", testLogger())

	loaded := gw.Load(context.Background())
	assert.Nil(t, loaded.User)
	assert.Equal(t, jsonOf(t, models.Seed()), jsonOf(t, loaded))
}

func TestGateway_CorruptRecordFallsBackToSeed(t *testing.T) {
	store := tcommon.NewMockKVStore()
	store.Put(DefaultSnapshotKey, []byte("{not json"))
	gw := NewSnapshotGateway(store, DefaultSnapshotKey, testLogger())

	loaded := gw.Load(context.Background())
	assert.Equal(t, jsonOf(t, models.Seed()), jsonOf(t, loaded))
}

func TestGateway_StoredUserIsIgnored(t *testing.T) {
	store := tcommon.NewMockKVStore()
	store.Put(DefaultSnapshotKey, []byte(`{"user":{"id":"u9","name":"x"},"accounts":[],"transactions":[],"categories":[],"portfolio":[]}`))
	gw := NewSnapshotGateway(store, DefaultSnapshotKey, testLogger())

	loaded := gw.Load(context.Background())
	assert.Nil(t, loaded.User)
	assert.Empty(t, loaded.Accounts)
}

func TestGateway_ReadErrorFallsBackToSeed(t *testing.T) {
	store := tcommon.NewMockKVStore()
	store.GetErr = errors.New("disk on fire")
	gw := NewSnapshotGateway(store, DefaultSnapshotKey, testLogger())

	loaded := gw.Load(context.Background())
	assert.Len(t, loaded.Accounts, len(models.Seed().Accounts))
}

func TestGateway_WriteFailureIsSwallowed(t *testing.T) {
	store := tcommon.NewMockKVStore()
	store.SetErr = errors.New("quota exceeded")
	gw := NewSnapshotGateway(store, DefaultSnapshotKey, testLogger())

	assert.NotPanics(t, func() { gw.Save(context.Background(), models.Seed()) })
	assert.Equal(t, 1, store.Sets())
}

func TestGateway_NilStore(t *testing.T) {
	gw := NewSnapshotGateway(nil, "", nil)
	ctx := context.Background()

	assert.NotPanics(t, func() { gw.Save(ctx, models.Seed()) })
	assert.Equal(t, jsonOf(t, models.Seed()), jsonOf(t, gw.Load(ctx)))
	assert.NoError(t, gw.Close())
}

func TestGateway_SaveOverwrites(t *testing.T) {
	store := tcommon.NewMockKVStore()
	gw := NewSnapshotGateway(store, "", testLogger())
	ctx := context.Background()

	gw.Save(ctx, models.Seed())
	gw.Save(ctx, &models.AppState{})

	loaded := gw.Load(ctx)
	assert.Empty(t, loaded.Accounts)
	assert.Empty(t, loaded.Portfolio)
}
