package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pharaoh-slot/core"
	"github.com/lixenwraith/pharaoh-slot/event"
	"github.com/lixenwraith/pharaoh-slot/status"
)

// Simulation is the game state advanced by the clock scheduler
// RunSafe serializes access with other goroutines (renderer); Step runs inside it
type Simulation interface {
	RunSafe(fn func())
	Step(dt time.Duration)
}

// ClockScheduler manages game logic on a fixed tick
// Each tick: dispatch queued events, then advance the simulation by exactly one tick interval
// Handles pause-aware scheduling without busy-wait
type ClockScheduler struct {
	sim    Simulation
	clock  *PausableClock
	queue  *event.EventQueue
	router *event.Router

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time // Next tick deadline for drift correction

	tickCount atomic.Uint64
	mu        sync.RWMutex

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Frame synchronization channels
	frameReady <-chan struct{} // Receive signal that frame is ready
	updateDone chan struct{}   // Send signal that update is complete

	statTicks *atomic.Int64
}

// NewClockScheduler creates a new clock scheduler with specified tick interval
// Receives frameReady sync channel and returns the updateDone channel signalled after every tick
func NewClockScheduler(
	sim Simulation,
	clock *PausableClock,
	queue *event.EventQueue,
	statusReg *status.Registry,
	tickInterval time.Duration,
	frameReady <-chan struct{},
) (*ClockScheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)

	cs := &ClockScheduler{
		sim:          sim,
		clock:        clock,
		queue:        queue,
		router:       event.NewRouter(queue),
		tickInterval: tickInterval,
		frameReady:   frameReady,
		updateDone:   updateDone,
		stopChan:     make(chan struct{}),
		statTicks:    statusReg.Ints.Get(status.KeyTicks),
	}

	return cs, updateDone
}

// RegisterEventHandler adds an event handler to router, must be called before Start()
func (cs *ClockScheduler) RegisterEventHandler(handler event.Handler) {
	cs.router.Register(handler)
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// TickCount returns the number of processed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// schedulerLoop runs the main scheduling loop with pause awareness
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if cs.clock.IsPaused() {
			// Increase sleep interval while paused to save CPU
			sleepDuration = cs.tickInterval * 2

			// Game time is frozen; realign the deadline so resume does not burst ticks
			cs.mu.Lock()
			cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
			cs.mu.Unlock()
		} else {
			gameNow := cs.clock.Now()

			cs.mu.RLock()
			deadline := cs.nextTickDeadline
			cs.mu.RUnlock()

			if !gameNow.Before(deadline) {
				if cs.frameReady != nil {
					select {
					case <-cs.frameReady:
					case <-time.After(cs.tickInterval * 2):
					case <-cs.stopChan:
						return
					}
				}

				cs.processTick()

				cs.mu.Lock()
				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

				maxBehind := cs.tickInterval * 2
				if gameNow.Sub(cs.nextTickDeadline) > maxBehind {
					cs.nextTickDeadline = gameNow.Add(cs.tickInterval)
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()

				select {
				case cs.updateDone <- struct{}{}:
				default:
				}

				sleepDuration = deadline.Sub(cs.clock.Now())
				if sleepDuration < 0 {
					sleepDuration = 0
				}
			} else {
				sleepDuration = deadline.Sub(gameNow)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}

// DispatchEventsImmediately processes all pending events synchronously
func (cs *ClockScheduler) DispatchEventsImmediately() {
	cs.sim.RunSafe(func() {
		cs.router.DispatchAll()
	})
}

// processTick executes one clock cycle
func (cs *ClockScheduler) processTick() {
	cs.sim.RunSafe(func() {
		// Process Events (Input -> Handlers)
		cs.router.DispatchAll()

		cs.sim.Step(cs.tickInterval)

		// Events raised during Step (outcome, game over) reach handlers in the same tick
		cs.router.DispatchAll()
	})

	ticks := cs.tickCount.Add(1)
	cs.statTicks.Store(int64(ticks))
}
