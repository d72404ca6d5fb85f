package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/wealthflow/internal/common"
	tcommon "github.com/bobmcallan/wealthflow/tests/common"
)

// testConfig starts the shared SurrealDB container and returns connection
// settings with a unique database name per test.
func testConfig(t *testing.T) common.SurrealDBConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping SurrealDB container test in short mode")
	}

	sc := tcommon.StartSurrealDB(t)

	// SurrealDB rejects "/" in database names
	sanitized := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return common.SurrealDBConfig{
		Address:   sc.Address(),
		Namespace: "wealthflow_test",
		Database:  fmt.Sprintf("t_%s_%d", sanitized, time.Now().UnixNano()%100000),
		Username:  "root",
		Password:  "root",
	}
}

func testKVStore(t *testing.T) *KVStore {
	t.Helper()
	store, err := NewKVStore(context.Background(), testLogger(), testConfig(t))
	if err != nil {
		t.Fatalf("NewKVStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// testLogger returns a silent logger for tests.
func testLogger() *common.Logger {
	return common.NewSilentLogger()
}
