package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/identity"
	"github.com/bobmcallan/wealthflow/internal/models"
	"github.com/bobmcallan/wealthflow/internal/services/ledger"
	"github.com/bobmcallan/wealthflow/internal/services/simulator"
)

// Persister receives every committed snapshot.
type Persister interface {
	Save(ctx context.Context, s *models.AppState)
}

// Controller owns the current snapshot. Actions are applied one at a time and
// each result replaces the snapshot atomically; readers never see a partial update.
// Every committed snapshot is handed to the persister in the background, where a
// newer snapshot replaces one that has not been written yet.
type Controller struct {
	state  atomic.Pointer[models.AppState]
	mu     sync.Mutex // serialises Dispatch
	closed bool

	persister Persister
	pending   chan *models.AppState
	persisted chan struct{}

	sim       *simulator.Simulator
	simMu     sync.Mutex
	simCancel context.CancelFunc
	simDone   chan struct{}

	logger    *common.Logger
	closeOnce sync.Once
}

// NewController starts the persistence worker. persister and sim may be nil;
// a nil sim means prices never move.
func NewController(initial *models.AppState, persister Persister, sim *simulator.Simulator, logger *common.Logger) *Controller {
	if initial == nil {
		initial = models.Seed()
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	c := &Controller{
		persister: persister,
		pending:   make(chan *models.AppState, 1),
		persisted: make(chan struct{}),
		sim:       sim,
		logger:    logger,
	}
	c.state.Store(initial)
	go c.persistLoop()
	return c
}

// State returns the current snapshot. Callers must not modify it.
func (c *Controller) State() *models.AppState {
	return c.state.Load()
}

// Dispatch applies action to the current snapshot, publishes the result and
// queues it for persistence.
func (c *Controller) Dispatch(action ledger.Action) *models.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := action.Apply(c.state.Load())
	c.state.Store(next)
	c.logger.Debug().Str("action", action.Name()).Msg("Action applied")

	if c.closed {
		c.logger.Warn().Str("action", action.Name()).Msg("Controller closed, change will not be persisted")
		return next
	}
	c.enqueue(next)
	return next
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// enqueue keeps only the newest snapshot waiting. Must hold c.mu.
func (c *Controller) enqueue(s *models.AppState) {
	for {
		select {
		case c.pending <- s:
			return
		default:
		}
		select {
		case <-c.pending:
		default:
		}
	}
}

func (c *Controller) persistLoop() {
	defer close(c.persisted)
	for s := range c.pending {
		if c.persister != nil {
			c.persister.Save(context.Background(), s)
		}
	}
}

// SignIn attaches user and starts the price simulator.
func (c *Controller) SignIn(user models.User) {
	c.Dispatch(ledger.SignInAction{User: user})
	c.armSimulator()
}

// SignOut stops the price simulator and clears the user.
func (c *Controller) SignOut() {
	c.disarmSimulator()
	c.Dispatch(ledger.SignOutAction{})
}

// SimulatorArmed reports whether price ticks are being generated.
func (c *Controller) SimulatorArmed() bool {
	c.simMu.Lock()
	defer c.simMu.Unlock()
	return c.simCancel != nil
}

func (c *Controller) armSimulator() {
	if c.sim == nil || c.isClosed() {
		return
	}
	c.simMu.Lock()
	defer c.simMu.Unlock()
	if c.simCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.simCancel = cancel
	c.simDone = done

	go func() {
		defer close(done)
		c.sim.Run(ctx, func(context.Context) { c.Tick() })
	}()
	c.logger.Info().Dur("interval", c.sim.Interval()).Msg("Price simulator armed")
}

func (c *Controller) disarmSimulator() {
	c.simMu.Lock()
	defer c.simMu.Unlock()
	if c.simCancel == nil {
		return
	}
	c.simCancel()
	<-c.simDone
	c.simCancel = nil
	c.simDone = nil
	c.logger.Info().Msg("Price simulator disarmed")
}

// Tick applies one simulated price movement. It is a no-op without a simulator.
func (c *Controller) Tick() *models.AppState {
	if c.sim == nil {
		return c.State()
	}
	return c.Dispatch(ledger.PriceTickAction{Perturb: c.sim.Perturb})
}

// Watch follows provider's identity transitions until ctx is done or the
// stream closes.
func (c *Controller) Watch(ctx context.Context, provider identity.Provider) {
	events := provider.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Principal != nil {
				c.SignIn(*ev.Principal)
			} else {
				c.SignOut()
			}
		}
	}
}

// Close stops the simulator and waits for the last snapshot to be written.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.disarmSimulator()

		c.mu.Lock()
		c.closed = true
		close(c.pending)
		c.mu.Unlock()

		<-c.persisted
		c.logger.Debug().Msg("Controller closed")
	})
}
