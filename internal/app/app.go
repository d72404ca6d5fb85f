// Package app wires configuration, storage, identity and services around the
// snapshot controller.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/clients/gemini"
	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/identity"
	"github.com/bobmcallan/wealthflow/internal/interfaces"
	"github.com/bobmcallan/wealthflow/internal/services/advice"
	"github.com/bobmcallan/wealthflow/internal/services/metrics"
	"github.com/bobmcallan/wealthflow/internal/services/report"
	"github.com/bobmcallan/wealthflow/internal/services/simulator"
	"github.com/bobmcallan/wealthflow/internal/storage"
)

// App holds the controller and the services around it. It is the shared core
// behind every CLI command.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Gateway     *storage.SnapshotGateway
	Controller  *Controller
	Identity    *identity.TokenProvider
	Advice      *advice.Service
	Rates       metrics.Rates
	Scope       metrics.Scope
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the explicit path, then
// WEALTHFLOW_CONFIG, then wealthflow.toml next to the binary, then
// config/wealthflow.toml for development.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("WEALTHFLOW_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "wealthflow.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/wealthflow.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and opens everything. configPath may be empty.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewAppWithConfig(ctx, config, common.NewLoggerFromConfig(config.Logging))
}

// NewAppWithConfig builds the App from an already loaded config.
func NewAppWithConfig(ctx context.Context, config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	gateway := storage.OpenGateway(ctx, logger, config)
	initial := gateway.Load(ctx)

	var sim *simulator.Simulator
	if config.Simulator.Enabled {
		sim = simulator.New(nil, config.Simulator.GetInterval(), logger)
	}

	rates := metrics.Rates{
		Home:    config.Metrics.HomeCurrency,
		USDRate: decimal.NewFromFloat(config.Metrics.USDRate),
	}

	var adviceClient interfaces.AdviceClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClientFromConfig(ctx, config.Clients.Gemini, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			adviceClient = client
		}
	} else {
		logger.Debug().Msg("Gemini API key not configured - advice will be unavailable")
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Gateway:     gateway,
		Controller:  NewController(initial, gateway, sim, logger),
		Identity:    identity.NewTokenProvider(config.Auth, logger),
		Advice:      advice.NewService(adviceClient, rates, logger),
		Rates:       rates,
		Scope:       metrics.ParseScope(config.Metrics.MonthlyScope),
		StartupTime: startupStart,
	}

	logger.Debug().
		Str("backend", config.Storage.Backend).
		Bool("simulator", sim != nil).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// ReportOptions returns the report settings for the configured rates and scope.
func (a *App) ReportOptions() report.Options {
	return report.Options{Rates: a.Rates, Scope: a.Scope, Now: time.Now()}
}

// WatchIdentity follows the identity provider in the background until ctx is done.
func (a *App) WatchIdentity(ctx context.Context) {
	go a.Controller.Watch(ctx, a.Identity)
}

// Close flushes pending snapshots and releases storage.
// Shutdown order: identity stream, controller (simulator + final save), storage.
func (a *App) Close() {
	if a.Identity != nil {
		a.Identity.Close()
	}
	if a.Controller != nil {
		a.Controller.Close()
	}
	if a.Gateway != nil {
		if err := a.Gateway.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
		a.Gateway = nil
	}
}
