package workout

import (
	"context"
	"sync"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
)

// Driver is the periodic tick source for an engine. It owns a wall-clock
// ticker and translates each tick into an UpdateTimer call: counting down
// during rest, up while exercising. The engine itself stays agnostic of how
// ticks are produced, so tests feed it synthetic ticks instead.
type Driver struct {
	engine   *Engine
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewDriver creates a driver for the engine. A non-positive interval falls
// back to one second.
func NewDriver(engine *Engine, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{engine: engine, interval: interval}
}

// Start launches the ticking goroutine. Calling Start on a running driver is
// a no-op; the goroutine exits when ctx is done or Stop is called.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	go d.run(runCtx)
}

// Stop halts the ticking goroutine. Safe to call repeatedly.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Driver) run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Tick advances the engine's timer by one step. Resting counts down with a
// floor of zero (the engine flips back to active at zero); exercising counts
// up. Idle, completed and absent sessions receive no updates.
func (d *Driver) Tick() {
	s := d.engine.CurrentSession()
	if s == nil {
		return
	}
	switch s.State {
	case domain.SessionResting:
		next := s.TimerSeconds - 1
		if next < 0 {
			next = 0
		}
		d.engine.UpdateTimer(next)
	case domain.SessionActive:
		d.engine.UpdateTimer(s.TimerSeconds + 1)
	}
}
