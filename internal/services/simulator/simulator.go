// Package simulator moves demo portfolio prices on a fixed cadence.
package simulator

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/models"
)

// MaxMove is the largest relative price change a single tick can apply.
const MaxMove = 0.01

// DefaultInterval is the tick cadence used when none is configured.
const DefaultInterval = 5 * time.Second

// RandSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Perturb returns a copy of portfolio where every current price moved by a uniform
// percentage in [-MaxMove, +MaxMove], rounded to 2 decimals. Nothing else changes.
func Perturb(portfolio []models.Stock, src RandSource) []models.Stock {
	out := make([]models.Stock, len(portfolio))
	for i, st := range portfolio {
		pct := (src.Float64() - 0.5) * 2 * MaxMove
		st.CurrentPrice = st.CurrentPrice.Mul(decimal.NewFromFloat(1 + pct)).Round(2)
		out[i] = st
	}
	return out
}

// Simulator owns the random source and the tick cadence.
type Simulator struct {
	mu       sync.Mutex // guards src
	src      RandSource
	interval time.Duration
	logger   *common.Logger
}

// New creates a simulator drawing from src. A nil src uses the process-wide generator.
func New(src RandSource, interval time.Duration, logger *common.Logger) *Simulator {
	if src == nil {
		src = globalSource{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Simulator{src: src, interval: interval, logger: logger}
}

// Interval returns the tick cadence.
func (s *Simulator) Interval() time.Duration { return s.interval }

// Perturb moves prices using the simulator's source.
func (s *Simulator) Perturb(portfolio []models.Stock) []models.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Perturb(portfolio, s.src)
}

// Run calls tick every interval until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, tick func(context.Context)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("Price simulator: started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("Price simulator: stopped")
			return
		case <-ticker.C:
			tick(ctx)
		}
	}
}
