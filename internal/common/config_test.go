package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WEALTHFLOW_ENV", "WEALTHFLOW_LOG_LEVEL", "WEALTHFLOW_STORAGE_BACKEND", "WEALTHFLOW_DATA_PATH",
		"WEALTHFLOW_SURREALDB_ADDRESS", "WEALTHFLOW_SIMULATOR_INTERVAL", "WEALTHFLOW_USD_RATE",
		"WEALTHFLOW_MONTHLY_SCOPE", "WEALTHFLOW_GEMINI_API_KEY", "GEMINI_API_KEY", "WEALTHFLOW_AUTH_JWT_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wealthflow.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("does-not-exist.toml", "")
	require.NoError(t, err)

	assert.Equal(t, BackendBadger, cfg.Storage.Backend)
	assert.Equal(t, "wealthflow_state", cfg.Storage.Key)
	assert.Equal(t, "data/badger", cfg.Storage.Badger.Path)
	assert.True(t, cfg.Simulator.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Simulator.GetInterval())
	assert.Equal(t, "TWD", cfg.Metrics.HomeCurrency)
	assert.Equal(t, 31.0, cfg.Metrics.USDRate)
	assert.Equal(t, MonthlyScopeAll, cfg.Metrics.MonthlyScope)
	assert.Equal(t, "gemini-2.5-flash", cfg.Clients.Gemini.Model)
	assert.Equal(t, 24*time.Hour, cfg.Auth.GetTokenExpiry())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
environment = "production"

[storage]
backend = "SurrealDB"

[storage.surrealdb]
address = "ws://db:8000/rpc"

[simulator]
interval = "250ms"

[metrics]
home_currency = "twd"
usd_rate = 32.5
monthly_scope = "month"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, BackendSurrealDB, cfg.Storage.Backend)
	assert.Equal(t, "ws://db:8000/rpc", cfg.Storage.SurrealDB.Address)
	assert.Equal(t, "wealthflow", cfg.Storage.SurrealDB.Namespace, "unset keys keep defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.GetInterval())
	assert.Equal(t, "TWD", cfg.Metrics.HomeCurrency)
	assert.Equal(t, 32.5, cfg.Metrics.USDRate)
	assert.Equal(t, MonthlyScopeMonth, cfg.Metrics.MonthlyScope)
}

func TestLoadConfig_LaterFilesWin(t *testing.T) {
	clearEnv(t)

	base := writeConfig(t, "[logging]\nlevel = \"debug\"\nformat = \"json\"\n")
	local := writeConfig(t, "[logging]\nlevel = \"warn\"\n")

	cfg, err := LoadConfig(base, local)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEALTHFLOW_STORAGE_BACKEND", "FILE")
	t.Setenv("WEALTHFLOW_DATA_PATH", "/var/lib/wealthflow")
	t.Setenv("WEALTHFLOW_USD_RATE", "30")
	t.Setenv("WEALTHFLOW_MONTHLY_SCOPE", "Month")
	t.Setenv("GEMINI_API_KEY", "generic-key")
	t.Setenv("WEALTHFLOW_AUTH_JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/wealthflow/state", cfg.Storage.File.Path)
	assert.Equal(t, "/var/lib/wealthflow/badger", cfg.Storage.Badger.Path)
	assert.Equal(t, 30.0, cfg.Metrics.USDRate)
	assert.Equal(t, MonthlyScopeMonth, cfg.Metrics.MonthlyScope)
	assert.Equal(t, "generic-key", cfg.Clients.Gemini.APIKey)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)

	t.Setenv("WEALTHFLOW_GEMINI_API_KEY", "dedicated-key")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dedicated-key", cfg.Clients.Gemini.APIKey)
}

func TestLoadConfig_NormalizesBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEALTHFLOW_USD_RATE", "-4")

	path := writeConfig(t, `
[storage]
backend = ""
key = ""

[simulator]
interval = "soon"

[metrics]
usd_rate = 0
monthly_scope = "quarter"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendBadger, cfg.Storage.Backend)
	assert.Equal(t, "wealthflow_state", cfg.Storage.Key)
	assert.Equal(t, 31.0, cfg.Metrics.USDRate)
	assert.Equal(t, MonthlyScopeAll, cfg.Metrics.MonthlyScope)
	assert.Equal(t, 5*time.Second, cfg.Simulator.GetInterval())
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(writeConfig(t, "[storage\nbackend="))
	assert.Error(t, err)
}
