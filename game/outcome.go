package game

import (
	"time"

	"github.com/lixenwraith/pharaoh-slot/engine"
	"github.com/lixenwraith/pharaoh-slot/reel"
)

// Classification is the verdict derived from every reel outcome of one spin
type Classification int

const (
	Loss Classification = iota
	Win
	FatalLoss
)

func (c Classification) String() string {
	switch c {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case FatalLoss:
		return "fatal"
	default:
		return "unknown"
	}
}

// Classify is FatalLoss if any outcome is an error or missing, Win if all symbols are equal, Loss otherwise
func Classify(outcomes []reel.Outcome) Classification {
	if len(outcomes) == 0 {
		return Loss
	}
	for _, o := range outcomes {
		if !o.IsSet() || o.Failed() {
			return FatalLoss
		}
	}
	first := outcomes[0].Symbol
	for _, o := range outcomes[1:] {
		if o.Symbol != first {
			return Loss
		}
	}
	return Win
}

// FailedReels returns the ids and errors of every reel that did not settle on a symbol
func FailedReels(outcomes []reel.Outcome) ([]int, []error) {
	var ids []int
	var errs []error
	for i, o := range outcomes {
		switch {
		case !o.IsSet():
			ids = append(ids, i)
			errs = append(errs, reel.ErrSettleTimeout)
		case o.Failed():
			ids = append(ids, i)
			errs = append(errs, o.Err)
		}
	}
	return ids, errs
}

// Barrier collects one outcome per reel and closes exactly once, when the last one arrives
// Arrival order does not matter; repeated arrivals for a reel are ignored
type Barrier struct {
	outcomes []reel.Outcome
	arrived  []bool
	count    int
	closed   bool
}

// NewBarrier creates a barrier for n reels
func NewBarrier(n int) *Barrier {
	return &Barrier{
		outcomes: make([]reel.Outcome, n),
		arrived:  make([]bool, n),
	}
}

// Arrive records the outcome for reel id; returns true only for the arrival that closes the barrier
func (b *Barrier) Arrive(id int, o reel.Outcome) bool {
	if b.closed || id < 0 || id >= len(b.arrived) || b.arrived[id] {
		return false
	}
	b.arrived[id] = true
	b.outcomes[id] = o
	b.count++
	if b.count == len(b.arrived) {
		b.closed = true
		return true
	}
	return false
}

// Closed reports whether every reel has arrived
func (b *Barrier) Closed() bool {
	return b.closed
}

// Count returns how many reels have arrived
func (b *Barrier) Count() int {
	return b.count
}

// Outcomes returns a copy of the collected outcomes, indexed by reel id
func (b *Barrier) Outcomes() []reel.Outcome {
	out := make([]reel.Outcome, len(b.outcomes))
	copy(out, b.outcomes)
	return out
}

// SpinCycle is the bookkeeping for one accepted spin request
type SpinCycle struct {
	*Barrier

	Started        time.Duration
	Classification Classification

	watchdog *engine.Handle
}

func newSpinCycle(reels int, now time.Duration) *SpinCycle {
	return &SpinCycle{Barrier: NewBarrier(reels), Started: now}
}
