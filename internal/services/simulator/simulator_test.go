package simulator

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/wealthflow/internal/models"
)

// seqSource replays fixed values.
type seqSource struct {
	values []float64
	i      int
}

func (s *seqSource) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestPerturb_Deterministic(t *testing.T) {
	portfolio := []models.Stock{
		{Symbol: "2330", CurrentPrice: decimal.NewFromInt(1000)},
		{Symbol: "0050", CurrentPrice: decimal.NewFromInt(150)},
		{Symbol: "AAPL", CurrentPrice: decimal.NewFromInt(180)},
	}
	// 0.0 -> -1%, 0.5 -> 0%, 0.75 -> +0.5%
	got := Perturb(portfolio, &seqSource{values: []float64{0.0, 0.5, 0.75}})

	require.Len(t, got, 3)
	assert.Equal(t, "990", got[0].CurrentPrice.String())
	assert.Equal(t, "150", got[1].CurrentPrice.String())
	assert.Equal(t, "180.9", got[2].CurrentPrice.String())
	assert.Equal(t, "1000", portfolio[0].CurrentPrice.String(), "input untouched")
}

func TestPerturb_RoundsToCents(t *testing.T) {
	portfolio := []models.Stock{{Symbol: "X", CurrentPrice: decimal.RequireFromString("123.45")}}
	got := Perturb(portfolio, &seqSource{values: []float64{0.6}}) // +0.2%
	assert.Equal(t, "123.7", got[0].CurrentPrice.String()) // 123.6969 -> 123.70
}

func TestPerturb_Bounds(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))
	seed := models.Seed().Portfolio
	tolerance := decimal.RequireFromString("0.005")

	for round := 0; round < 200; round++ {
		got := Perturb(seed, src)
		for i, st := range got {
			orig := seed[i]
			maxDelta := orig.CurrentPrice.Mul(decimal.NewFromFloat(MaxMove)).Add(tolerance)
			delta := st.CurrentPrice.Sub(orig.CurrentPrice).Abs()
			assert.True(t, delta.LessThanOrEqual(maxDelta), "%s moved %s (max %s)", st.Symbol, delta, maxDelta)
			assert.True(t, st.CurrentPrice.Equal(st.CurrentPrice.Round(2)))
			assert.Equal(t, orig.Symbol, st.Symbol)
			assert.True(t, orig.Quantity.Equal(st.Quantity))
			assert.True(t, orig.AvgCost.Equal(st.AvgCost))
			assert.Equal(t, orig.Currency, st.Currency)
		}
	}
}

func TestPerturb_Empty(t *testing.T) {
	assert.Empty(t, Perturb(nil, &seqSource{values: []float64{0}}))
}

func TestSimulator_Defaults(t *testing.T) {
	s := New(nil, 0, nil)
	assert.Equal(t, DefaultInterval, s.Interval())
	got := s.Perturb(models.Seed().Portfolio)
	assert.Len(t, got, 4)
}

func TestSimulator_RunTicksUntilCancelled(t *testing.T) {
	s := New(&seqSource{values: []float64{0.5}}, 5*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	done := make(chan struct{})
	go func() {
		s.Run(ctx, func(context.Context) { ticks.Add(1) })
		close(done)
	}()

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ticks.Load(), "no ticks after cancel")
}
