package sim

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/utils"
)

// Snapshot is a consistent view of the simulation state.
type Snapshot struct {
	Grid       *model.Grid
	Running    bool
	Generation int
	Population int
	Stagnant   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the wall-clock scheduler driving the step loop.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithRand sets the random source used by Randomize.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithObserver registers a callback invoked with a fresh Snapshot after every
// state change. It is never called with the controller lock held, and may be
// called from the scheduler's goroutine.
func WithObserver(f func(Snapshot)) Option {
	return func(c *Controller) { c.observer = f }
}

// Controller owns the simulation state and drives the step loop.
type Controller struct {
	cfg      utils.Config
	sched    Scheduler
	rng      *rand.Rand
	observer func(Snapshot)

	mu         sync.Mutex
	grid       *model.Grid
	running    bool
	generation int
	stagnant   bool
	history    *model.History
	stats      *utils.Stats
	lastTick   time.Time

	// epoch identifies the active loop; ticks scheduled by an older loop
	// find a different value and return without stepping.
	epoch  uint64
	cancel Cancel
}

// NewController returns a stopped controller with a blank grid.
func NewController(cfg utils.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewController] invalid config")
	}

	c := &Controller{
		cfg:   cfg,
		sched: TimerScheduler{},
		grid:  model.NewGrid(cfg.Rows, cfg.Cols),
		stats: utils.NewStats(),
	}
	if cfg.StagnationHistory > 0 {
		c.history = model.NewHistory(cfg.StagnationHistory)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Grid returns the current grid. The returned grid is never modified.
func (c *Controller) Grid() *model.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid
}

// IsRunning reports whether the step loop is active.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Generation returns the number of steps since the last Clear. It stays at
// zero when generation tracking is disabled.
func (c *Controller) Generation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Snapshot returns the grid, running flag and counters read together.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Stats returns a copy of the performance statistics.
func (c *Controller) Stats() utils.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.stats
}

// Start begins the step loop. The first step happens one tick interval later.
func (c *Controller) Start() error {
	return c.command(c.startLocked)
}

// Stop halts the step loop; a pending tick is cancelled.
func (c *Controller) Stop() error {
	return c.command(c.stopLocked)
}

// Toggle starts a stopped simulation and stops a running one.
func (c *Controller) Toggle() error {
	return c.command(func() error {
		if c.running {
			return c.stopLocked()
		}
		return c.startLocked()
	})
}

// StepOnce advances a stopped simulation by a single generation.
func (c *Controller) StepOnce() error {
	return c.command(func() error {
		if c.running {
			return errors.Wrap(ErrRunning, "[StepOnce]")
		}
		c.advanceLocked()
		return nil
	})
}

// ToggleCell flips the cell at (r, c).
func (c *Controller) ToggleCell(r, col int) error {
	return c.command(func() error {
		if c.running && c.cfg.LockEditsWhileRunning {
			return errors.Wrap(ErrRunning, "[ToggleCell]")
		}
		next, err := c.grid.Toggle(r, col)
		if err != nil {
			return errors.Wrap(err, "[ToggleCell]")
		}
		c.replaceLocked(next)
		return nil
	})
}

// Place stamps a pattern with its top-left corner at (r, c).
func (c *Controller) Place(p model.Pattern, r, col int) error {
	return c.command(func() error {
		if c.running && c.cfg.LockEditsWhileRunning {
			return errors.Wrap(ErrRunning, "[Place]")
		}
		if !c.grid.InBounds(r, col) {
			return errors.Wrapf(model.ErrInvalidCoordinate, "[Place] (%d,%d) outside %dx%d grid",
				r, col, c.grid.Rows(), c.grid.Cols())
		}
		c.replaceLocked(c.grid.Place(p, r, col))
		return nil
	})
}

// Randomize replaces the grid with a random fill.
func (c *Controller) Randomize() error {
	return c.command(func() error {
		if !c.cfg.AllowRandomize {
			return errors.Wrap(ErrRandomizeDisabled, "[Randomize]")
		}
		if c.running && c.cfg.LockEditsWhileRunning {
			return errors.Wrap(ErrRunning, "[Randomize]")
		}
		c.replaceLocked(c.grid.Randomize(c.cfg.LiveThreshold, c.rng))
		return nil
	})
}

// Clear stops the simulation, resets the generation counter and blanks the
// grid. It is accepted in every state.
func (c *Controller) Clear() {
	_ = c.command(func() error {
		c.haltLocked()
		c.generation = 0
		c.grid = c.grid.Blank()
		c.resetHistoryLocked()
		c.stats.Reset()
		return nil
	})
}

// command runs fn under the lock and notifies the observer when fn accepted
// the command.
func (c *Controller) command(fn func() error) error {
	c.mu.Lock()
	err := fn()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err == nil {
		c.notify(snap)
	}
	return err
}

func (c *Controller) startLocked() error {
	if c.running {
		return errors.Wrap(ErrAlreadyRunning, "[Start]")
	}
	if c.cfg.RequireNonEmptyStart && c.grid.IsEmpty() {
		return errors.Wrap(ErrEmptyField, "[Start]")
	}
	c.running = true
	c.epoch++
	c.lastTick = time.Now()
	c.resetHistoryLocked()
	c.scheduleLocked(c.epoch)
	return nil
}

func (c *Controller) stopLocked() error {
	if !c.running {
		return errors.Wrap(ErrNotRunning, "[Stop]")
	}
	if !c.cfg.AllowPause {
		return errors.Wrap(ErrPauseDisabled, "[Stop]")
	}
	c.haltLocked()
	return nil
}

func (c *Controller) haltLocked() {
	c.running = false
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) scheduleLocked(epoch uint64) {
	c.cancel = c.sched.AfterFunc(c.cfg.TickInterval, func() { c.tick(epoch) })
}

// tick is one iteration of the step loop. The running flag and epoch are read
// when the tick fires, not when it was scheduled.
func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	if !c.running || c.epoch != epoch {
		c.mu.Unlock()
		return
	}

	c.advanceLocked()
	if c.cfg.StopWhenExtinct && c.grid.IsEmpty() {
		c.running = false
		c.epoch++
		c.cancel = nil
	} else {
		c.scheduleLocked(epoch)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) advanceLocked() {
	var next *model.Grid
	if c.cfg.UseParallel {
		next = model.StepParallel(c.grid, 0)
	} else {
		next = model.Step(c.grid)
	}
	c.grid = next

	if c.cfg.TrackGeneration {
		c.generation++
	}
	if c.history != nil {
		c.stagnant = c.history.Repeats(next)
		c.history.Record(next)
	}

	now := time.Now()
	c.stats.Update(c.generation, next.Population(), now.Sub(c.lastTick))
	c.lastTick = now
}

func (c *Controller) replaceLocked(next *model.Grid) {
	c.grid = next
	c.resetHistoryLocked()
}

func (c *Controller) resetHistoryLocked() {
	c.stagnant = false
	if c.history != nil {
		c.history.Reset()
		c.history.Record(c.grid)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Grid:       c.grid,
		Running:    c.running,
		Generation: c.generation,
		Population: c.grid.Population(),
		Stagnant:   c.stagnant,
	}
}

func (c *Controller) notify(snap Snapshot) {
	if c.observer != nil {
		c.observer(snap)
	}
}
