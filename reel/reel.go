package reel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/pharaoh-slot/constant"
	"github.com/lixenwraith/pharaoh-slot/engine"
)

// Animator is the tween collaborator a reel spins through
type Animator interface {
	Animate(t *engine.Tween) *engine.Tween
	CancelAnimationsOf(target any) int
}

// SettleFunc receives a reel's single outcome for a spin
type SettleFunc func(id int, o Outcome)

// Slot is one mounted symbol and its strip-local y
type Slot struct {
	Symbol Symbol
	Y      float64
}

// Timing bounds the randomized spin parameters
type Timing struct {
	SpinCountMin   int
	SpinCountMax   int
	OffsetSlotsMax int
	BaseDuration   time.Duration
	DurationStep   time.Duration
	Ease           engine.EaseFunc
}

// DefaultTiming returns the cascading-stop timing: reel 0 stops first, each next one 700ms later
func DefaultTiming() Timing {
	return Timing{
		SpinCountMin:   constant.SpinCountMin,
		SpinCountMax:   constant.SpinCountMax,
		OffsetSlotsMax: constant.OffsetSlotsMax,
		BaseDuration:   constant.SpinBaseDuration,
		DurationStep:   constant.SpinDurationStep,
		Ease:           engine.CubicOut,
	}
}

// SpinParams is one reel's randomized travel for one spin
type SpinParams struct {
	SpinCount   int
	OffsetSlots int
	Distance    float64
	Duration    time.Duration
	Ease        engine.EaseFunc
}

// NewSpinParams derives travel for reel index: whole strip revolutions plus a random slot offset
func NewSpinParams(rng *rand.Rand, index, stripLen int, t Timing) SpinParams {
	spinCount := t.SpinCountMin + rng.IntN(t.SpinCountMax-t.SpinCountMin+1) + index
	offsetSlots := rng.IntN(t.OffsetSlotsMax + 1)
	return SpinParams{
		SpinCount:   spinCount,
		OffsetSlots: offsetSlots,
		Distance:    float64(spinCount)*constant.SymbolHeight*float64(stripLen) + float64(offsetSlots)*constant.SymbolHeight,
		Duration:    t.BaseDuration + time.Duration(index)*t.DurationStep,
		Ease:        t.Ease,
	}
}

// Reel is one independently animated column
type Reel struct {
	ID    int
	Slots []Slot

	base   []float64
	travel float64

	gen       uint64
	spinning  bool
	outcome   Outcome
	onSettled SettleFunc

	log *zap.Logger
}

// New mounts strip on the grid: row r rests at r*SymbolHeight + WrapMin
func New(id int, strip []Symbol, log *zap.Logger) *Reel {
	r := &Reel{ID: id, log: log}
	r.Mount(strip)
	return r
}

// Mount replaces the strip and resets the outcome
func (r *Reel) Mount(strip []Symbol) {
	r.Slots = make([]Slot, len(strip))
	for i, s := range strip {
		r.Slots[i] = Slot{Symbol: s, Y: float64(i)*constant.SymbolHeight + constant.WrapMin}
	}
	r.Reset()
}

// Reset clears the outcome and invalidates any in-flight settle
func (r *Reel) Reset() {
	r.gen++
	r.spinning = false
	r.outcome = Outcome{}
	r.onSettled = nil
}

// Outcome returns the current spin's outcome, unset while spinning
func (r *Reel) Outcome() Outcome {
	return r.outcome
}

// Spinning reports whether a spin is awaiting its settle
func (r *Reel) Spinning() bool {
	return r.spinning
}

// Spin launches one travel tween; onSettled fires exactly once for this request
// A strip shorter than MinStripLength settles immediately with ErrIncompleteStrip
func (r *Reel) Spin(anim Animator, p SpinParams, onSettled SettleFunc) {
	anim.CancelAnimationsOf(r)
	r.Reset()
	r.spinning = true
	r.onSettled = onSettled
	gen := r.gen

	if len(r.Slots) < constant.MinStripLength {
		r.settle(gen, ErrorOutcome(fmt.Errorf("reel %d before spin: %d symbols: %w", r.ID, len(r.Slots), ErrIncompleteStrip)))
		return
	}

	r.base = r.base[:0]
	for _, s := range r.Slots {
		r.base = append(r.base, s.Y)
	}
	r.travel = 0

	anim.Animate(&engine.Tween{
		Target:     r,
		Props:      []engine.Prop{{Value: &r.travel, To: p.Distance}},
		Duration:   p.Duration,
		Ease:       p.Ease,
		OnUpdate:   func(float64) { r.applyTravel() },
		OnComplete: func() { r.complete(gen) },
	})
}

// ForceSettle stops a stalled spin and settles it with err
// Returns false if the reel already settled
func (r *Reel) ForceSettle(anim Animator, err error) bool {
	if !r.spinning || r.outcome.IsSet() {
		return false
	}
	anim.CancelAnimationsOf(r)
	r.snap()
	r.settle(r.gen, ErrorOutcome(fmt.Errorf("reel %d: %w", r.ID, err)))
	return true
}

func (r *Reel) applyTravel() {
	n := min(len(r.Slots), len(r.base))
	for i := 0; i < n; i++ {
		r.Slots[i].Y = r.wrap(r.base[i] + r.travel)
	}
}

// wrap folds y into the renderable band [WrapMin, WrapMin + len*SymbolHeight)
func (r *Reel) wrap(y float64) float64 {
	period := float64(len(r.Slots)) * constant.SymbolHeight
	if period == 0 {
		return y
	}
	m := math.Mod(y-constant.WrapMin, period)
	if m < 0 {
		m += period
	}
	return constant.WrapMin + m
}

// snap aligns slots to the symbol grid and orders them top to bottom
func (r *Reel) snap() {
	for i := range r.Slots {
		row := math.Round((r.Slots[i].Y - constant.WrapMin) / constant.SymbolHeight)
		r.Slots[i].Y = r.wrap(row*constant.SymbolHeight + constant.WrapMin)
	}
	slices.SortStableFunc(r.Slots, func(a, b Slot) int {
		switch {
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		default:
			return 0
		}
	})
}

func (r *Reel) complete(gen uint64) {
	if gen != r.gen || r.outcome.IsSet() {
		return
	}

	if len(r.Slots) < constant.MinStripLength {
		r.settle(gen, ErrorOutcome(fmt.Errorf("reel %d after spin: %d symbols: %w", r.ID, len(r.Slots), ErrIncompleteStrip)))
		return
	}

	r.applyTravel()
	r.snap()

	for _, s := range r.Slots {
		if s.Y != constant.MiddleSlotY {
			continue
		}
		if !s.Symbol.Valid() {
			r.settle(gen, ErrorOutcome(fmt.Errorf("reel %d middle slot: %w", r.ID, ErrInvalidSymbol)))
			return
		}
		r.settle(gen, SymbolOutcome(s.Symbol))
		return
	}
	r.settle(gen, ErrorOutcome(fmt.Errorf("reel %d: no symbol on payline: %w", r.ID, ErrInvalidSymbol)))
}

func (r *Reel) settle(gen uint64, o Outcome) {
	if gen != r.gen || r.outcome.IsSet() {
		return
	}
	r.outcome = o
	r.spinning = false

	if o.Failed() {
		r.log.Warn("reel settled with error", zap.Int("reel", r.ID), zap.Error(o.Err))
	} else {
		r.log.Debug("reel settled", zap.Int("reel", r.ID), zap.Stringer("symbol", o.Symbol))
	}

	if cb := r.onSettled; cb != nil {
		r.onSettled = nil
		cb(r.ID, o)
	}
}
