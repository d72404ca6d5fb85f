package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/models"
	"github.com/bobmcallan/wealthflow/internal/services/advice"
	"github.com/bobmcallan/wealthflow/internal/services/ledger"
	"github.com/bobmcallan/wealthflow/internal/services/metrics"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := `
environment = "test"

[storage]
backend = "file"

[storage.file]
path = "` + filepath.ToSlash(filepath.Join(dir, "state")) + `"

[simulator]
enabled = false

[metrics]
monthly_scope = "month"
usd_rate = 30

[logging]
level = "error"
`
	path := filepath.Join(dir, "wealthflow.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewApp_InitializesFromConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("WEALTHFLOW_GEMINI_API_KEY", "")

	a, err := NewApp(context.Background(), writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "test", a.Config.Environment)
	assert.NotNil(t, a.Logger)
	assert.NotNil(t, a.Gateway)
	assert.NotNil(t, a.Identity)
	assert.False(t, a.StartupTime.IsZero())
	assert.Equal(t, metrics.ScopeCalendarMonth, a.Scope)
	assert.Equal(t, "30", a.Rates.USDRate.String())

	s := a.Controller.State()
	assert.Nil(t, s.User)
	assert.Len(t, s.Accounts, len(models.Seed().Accounts))

	assert.Equal(t, advice.UnavailableMessage, a.Advice.Generate(context.Background(), s))
}

func TestNewApp_PersistsAcrossRestart(t *testing.T) {
	path := writeTestConfig(t)
	ctx := context.Background()

	a, err := NewApp(ctx, path)
	require.NoError(t, err)
	a.Controller.SignIn(models.SeedUser)
	a.Controller.Dispatch(ledger.DeleteAccountAction{ID: "a1"})
	a.Close()

	b, err := NewApp(ctx, path)
	require.NoError(t, err)
	defer b.Close()

	s := b.Controller.State()
	assert.Nil(t, s.User)
	assert.Nil(t, s.FindAccount("a1"))
	assert.Len(t, s.Accounts, 3)
}

func TestNewApp_SimulatorDisabled(t *testing.T) {
	a, err := NewApp(context.Background(), writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	a.Controller.SignIn(models.SeedUser)
	assert.False(t, a.Controller.SimulatorArmed())
}

func TestNewAppWithConfig_UnavailableStorageStillStarts(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Backend = "nowhere"
	cfg.Simulator.Enabled = false

	a, err := NewAppWithConfig(context.Background(), cfg, common.NewSilentLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Controller.State().Portfolio, len(models.Seed().Portfolio))
}

func TestResolveConfigPath(t *testing.T) {
	assert.Equal(t, "explicit.toml", ResolveConfigPath("explicit.toml"))

	t.Setenv("WEALTHFLOW_CONFIG", "/etc/wealthflow/wealthflow.toml")
	assert.Equal(t, "/etc/wealthflow/wealthflow.toml", ResolveConfigPath(""))
}

func TestReportOptions(t *testing.T) {
	a, err := NewApp(context.Background(), writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	opts := a.ReportOptions()
	assert.Equal(t, metrics.ScopeCalendarMonth, opts.Scope)
	assert.False(t, opts.Now.IsZero())
}
