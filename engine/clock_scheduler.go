package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/status"
)

// Stepper advances a simulation by one fixed tick
type Stepper interface {
	Step(dt time.Duration)
}

// ClockScheduler is the single driving loop: one timer, one Step per tick
// Deadlines advance by whole intervals for drift correction; a loop that falls far behind resyncs instead of bursting
type ClockScheduler struct {
	stepper      Stepper
	clock        TimeProvider
	tickInterval time.Duration

	paused    atomic.Bool
	running   atomic.Bool
	tickCount atomic.Uint64

	// Lifecycle, guarded by mu; a fresh stop channel per run allows Start after Stop
	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup

	updateDone chan struct{} // signalled after each completed step

	statTicks  *status.Counter
	statPaused *status.Flag
}

// NewClockScheduler returns a stopped scheduler and the update-done channel the frame loop waits on
func NewClockScheduler(stepper Stepper, clock TimeProvider, tickInterval time.Duration, reg *status.Registry) (*ClockScheduler, <-chan struct{}) {
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	updateDone := make(chan struct{}, 1)
	cs := &ClockScheduler{
		stepper:      stepper,
		clock:        clock,
		tickInterval: tickInterval,
		updateDone:   updateDone,
		statTicks:    reg.Counter("engine.ticks"),
		statPaused:   reg.Flag("engine.paused"),
	}
	return cs, updateDone
}

// Start launches the loop if it is not already running
func (cs *ClockScheduler) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.running.CompareAndSwap(false, true) {
		return
	}
	cs.stopChan = make(chan struct{})
	cs.wg.Add(1)
	stop := cs.stopChan
	// First deadline is fixed before the goroutine runs so clock moves after Start count
	next := cs.clock.Now().Add(cs.tickInterval)
	Go(func() { cs.schedulerLoop(stop, next) })
}

// Stop halts the loop and waits for an in-flight step to finish
// Safe to call repeatedly and before Start
func (cs *ClockScheduler) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.running.CompareAndSwap(true, false) {
		return
	}
	close(cs.stopChan)
	cs.wg.Wait()
}

// Restart stops the loop, runs reset with no tick in flight, then starts again
func (cs *ClockScheduler) Restart(reset func()) {
	cs.Stop()
	if reset != nil {
		reset()
	}
	cs.Start()
}

func (cs *ClockScheduler) Pause() {
	cs.paused.Store(true)
	cs.statPaused.Store(true)
}

func (cs *ClockScheduler) Resume() {
	cs.paused.Store(false)
	cs.statPaused.Store(false)
}

// TogglePause flips pause and returns the new state
func (cs *ClockScheduler) TogglePause() bool {
	if cs.paused.Load() {
		cs.Resume()
		return false
	}
	cs.Pause()
	return true
}

func (cs *ClockScheduler) IsPaused() bool {
	return cs.paused.Load()
}

func (cs *ClockScheduler) IsRunning() bool {
	return cs.running.Load()
}

func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Tick runs one step unless paused and reports whether it did
func (cs *ClockScheduler) Tick() bool {
	if cs.paused.Load() {
		return false
	}
	cs.stepper.Step(cs.tickInterval)
	cs.statTicks.Store(int64(cs.tickCount.Add(1)))

	select {
	case cs.updateDone <- struct{}{}:
	default:
	}
	return true
}

func (cs *ClockScheduler) schedulerLoop(stop <-chan struct{}, next time.Time) {
	defer cs.wg.Done()

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		var sleep time.Duration
		if cs.paused.Load() {
			// Slow poll while paused; the first tick after resume waits a full interval
			sleep = cs.tickInterval * parameter.PausedSleepFactor
			next = cs.clock.Now().Add(cs.tickInterval)
		} else {
			now := cs.clock.Now()
			if !now.Before(next) {
				cs.Tick()
				next = next.Add(cs.tickInterval)
				if now.Sub(next) > 2*cs.tickInterval {
					next = now.Add(cs.tickInterval)
				}
			}
			sleep = max(next.Sub(cs.clock.Now()), 0)
		}

		timer.Reset(sleep)
		select {
		case <-stop:
			return
		case <-timer.C:
		}
	}
}
