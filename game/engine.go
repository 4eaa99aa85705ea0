// Package game runs the spin cycle: it accepts spin requests, waits for every reel to settle,
// classifies the result, plays the matching feedback sequence and updates the session once that
// sequence reports completion.
//
// All state lives in a Context driven by Step on a single goroutine. Other goroutines reach the
// engine through RunSafe or the event queue.
package game

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/pharaoh-slot/audio"
	"github.com/lixenwraith/pharaoh-slot/constant"
	"github.com/lixenwraith/pharaoh-slot/event"
	"github.com/lixenwraith/pharaoh-slot/feedback"
	"github.com/lixenwraith/pharaoh-slot/parameter"
	"github.com/lixenwraith/pharaoh-slot/reel"
	"github.com/lixenwraith/pharaoh-slot/session"
	"github.com/lixenwraith/pharaoh-slot/status"
)

// Config parameterizes an Engine
type Config struct {
	Attempts int
	Reels    int

	// SettleTimeout is the grace period after the slowest reel's expected stop before stalled reels are
	// forced to settle with reel.ErrSettleTimeout; zero disables the watchdog
	SettleTimeout time.Duration

	Timing reel.Timing
	Win    feedback.WinTiming
	Lose   feedback.LoseTiming

	// SkipEntrance leaves mascots at rest instead of flying them in; used by the simulator
	SkipEntrance bool
}

// DefaultConfig returns the stock game setup
func DefaultConfig() Config {
	return Config{
		Attempts:      parameter.DefaultAttempts,
		Reels:         constant.ReelCount,
		SettleTimeout: parameter.DefaultSettleTimeout,
		Timing:        reel.DefaultTiming(),
		Win:           feedback.DefaultWinTiming(),
		Lose:          feedback.DefaultLoseTiming(),
	}
}

// Engine owns the current session context and advances it in virtual time
type Engine struct {
	mu sync.Mutex

	cfg  Config
	rng  *rand.Rand
	cues audio.Player
	log  *zap.Logger

	queue *event.EventQueue

	ctx *Context
	gen uint64
	now time.Duration

	statSpins    *atomic.Int64
	statWins     *atomic.Int64
	statAttempts *atomic.Int64
	statStatus   *status.AtomicString
	statOutcome  *status.AtomicString
}

// NewEngine builds the first session and starts its entrance
// queue and reg may be nil when nothing consumes events or status
func NewEngine(cfg Config, rng *rand.Rand, cues audio.Player, queue *event.EventQueue, reg *status.Registry, log *zap.Logger) *Engine {
	if cues == nil {
		cues = &audio.NullPlayer{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Reels <= 0 {
		cfg.Reels = constant.ReelCount
	}

	e := &Engine{
		cfg:   cfg,
		rng:   rng,
		cues:  cues,
		log:   log,
		queue: queue,
	}
	if reg != nil {
		e.statSpins = reg.Ints.Get(status.KeySpins)
		e.statWins = reg.Ints.Get(status.KeyWins)
		e.statAttempts = reg.Ints.Get(status.KeyAttempts)
		e.statStatus = reg.Strings.Get(status.KeyStatus)
		e.statOutcome = reg.Strings.Get(status.KeyOutcome)
	}

	e.ctx = e.newContext(reel.NewSet(cfg.Reels, rng, log.Named("reel")))
	e.startSession()
	return e
}

// Context returns the current session context; callers on other goroutines must hold RunSafe
func (e *Engine) Context() *Context {
	return e.ctx
}

// Now returns virtual time since the engine was built
func (e *Engine) Now() time.Duration {
	return e.now
}

// RunSafe executes fn while holding the engine lock
func (e *Engine) RunSafe(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

// Step advances timers, then tweens, of the current context by dt
func (e *Engine) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.now += dt

	c := e.ctx
	c.Scheduler.Advance(dt)
	if c == e.ctx {
		c.Animator.Update(dt)
	}
	e.publish()
}

// RequestSpin starts a spin if the session is idle with attempts left
// Any other request is a silent no-op and returns false
func (e *Engine) RequestSpin() bool {
	c := e.ctx
	s := c.Session
	if !s.CanSpin() {
		e.log.Debug("spin request ignored",
			zap.Stringer("status", s.Status()),
			zap.Int("attempts", s.Attempts()),
			zap.Bool("over", s.IsOver()),
		)
		return false
	}

	c.Sequencer.Cancel()
	c.Reels.Reset()
	e.hideBanner(c)

	if !e.transition(c, session.Spinning) {
		return false
	}
	cycle := newSpinCycle(c.Reels.Len(), e.now)
	c.Cycle = cycle

	e.cues.PlayCue(audio.CueSpinLoop, audio.MarkerFastPart)
	e.emit(event.EventSpinStarted, e.sessionPayload(c))
	e.log.Debug("spin started", zap.Int("spin", s.Spins()), zap.Int("attempts", s.Attempts()))

	var longest time.Duration
	for i, r := range c.Reels.Reels {
		p := reel.NewSpinParams(e.rng, i, len(r.Slots), e.cfg.Timing)
		longest = max(longest, p.Duration)
		r.Spin(c.Animator, p, func(id int, o reel.Outcome) {
			e.onSettled(c, cycle, id, o)
		})
	}

	// Short strips settle synchronously and may have closed the barrier already
	if e.cfg.SettleTimeout > 0 && !cycle.Closed() {
		cycle.watchdog = c.Scheduler.ScheduleOnce(longest+e.cfg.SettleTimeout, func() {
			e.forceSettle(c, cycle)
		})
	}

	e.publish()
	return true
}

// Restart discards the current session and builds a fresh one with newly dealt reels
// Allowed in any status
func (e *Engine) Restart() {
	old := e.ctx
	old.release()
	e.cues.StopAll()

	e.ctx = e.newContext(reel.NewSet(e.cfg.Reels, e.rng, e.log.Named("reel")))

	e.log.Info("session restarted", zap.Uint64("gen", e.ctx.Gen))
	e.startSession()
}

func (e *Engine) startSession() {
	c := e.ctx
	if e.cfg.SkipEntrance {
		e.restScene(c)
	} else {
		e.entrance(c)
	}
	e.emit(event.EventSessionStarted, e.sessionPayload(c))
	e.publish()
}

// current reports whether c and cycle still belong to the live session and spin
func (e *Engine) current(c *Context, cycle *SpinCycle) bool {
	return c == e.ctx && c.Cycle == cycle
}

func (e *Engine) onSettled(c *Context, cycle *SpinCycle, id int, o reel.Outcome) {
	if !e.current(c, cycle) {
		return
	}

	p := &event.ReelSettledPayload{Reel: id, Err: o.Err}
	if !o.Failed() {
		p.Symbol = o.Symbol.String()
	}
	e.emit(event.EventReelSettled, p)

	if !cycle.Arrive(id, o) {
		return
	}
	cycle.watchdog.Cancel()
	e.resolve(c, cycle)
}

func (e *Engine) forceSettle(c *Context, cycle *SpinCycle) {
	if !e.current(c, cycle) || cycle.Closed() {
		return
	}
	stalled := c.Reels.Spinning()
	e.log.Warn("reels stalled, forcing settle", zap.Int("count", len(stalled)), zap.Duration("timeout", e.cfg.SettleTimeout))
	for _, r := range stalled {
		r.ForceSettle(c.Animator, reel.ErrSettleTimeout)
	}
}

// resolve classifies the closed barrier, applies it to the session and starts feedback
func (e *Engine) resolve(c *Context, cycle *SpinCycle) {
	s := c.Session
	if !e.transition(c, session.Resolving) {
		return
	}
	e.cues.StopCue(audio.CueSpinLoop)

	outcomes := cycle.Outcomes()
	class := Classify(outcomes)
	cycle.Classification = class

	switch class {
	case Win:
		s.RecordWin()
	case Loss:
		s.RecordLoss()
	case FatalLoss:
		s.RecordFatal()
		ids, errs := FailedReels(outcomes)
		e.log.Error("spin failed, session forfeited",
			zap.Ints("reels", ids),
			zap.Errors("errors", errs),
		)
	}

	symbols := make([]string, len(outcomes))
	for i, o := range outcomes {
		symbols[i] = o.String()
	}
	e.log.Info("spin resolved",
		zap.Stringer("classification", class),
		zap.Strings("symbols", symbols),
		zap.Int("attempts", s.Attempts()),
	)
	e.emit(event.EventOutcomeClassified, &event.OutcomePayload{
		Classification: class.String(),
		Symbols:        symbols,
		Attempts:       s.Attempts(),
		CycleDuration:  e.now - cycle.Started,
	})
	if e.statOutcome != nil {
		e.statOutcome.Store(class.String())
	}

	if !e.transition(c, session.PlayingFeedback) {
		return
	}
	done := func() { e.afterFeedback(c, cycle) }
	if class == Win {
		c.Sequencer.PlayWin(done)
	} else {
		c.Sequencer.PlayLose(done)
	}
}

// afterFeedback runs once per spin, from the sequence completion callback
func (e *Engine) afterFeedback(c *Context, cycle *SpinCycle) {
	if !e.current(c, cycle) {
		return
	}
	s := c.Session
	e.emit(event.EventFeedbackComplete, e.sessionPayload(c))

	if s.Attempts() == 0 {
		e.transition(c, session.GameOver)
		e.showEnd(c)
		e.emit(event.EventGameOver, e.sessionPayload(c))
		e.log.Info("game over", zap.Int("spins", s.Spins()), zap.Int("wins", s.Wins()))
		e.publish()
		return
	}

	switch cycle.Classification {
	case Win:
		e.showBanner(c, winBanner())
		e.returnMascots(c)
	case Loss:
		e.showBanner(c, AttemptsText(s.Attempts()))
	}
	e.transition(c, session.Idle)
	e.publish()
}

func (e *Engine) transition(c *Context, to session.Status) bool {
	from := c.Session.Status()
	if !c.Session.Transition(to, e.now) {
		e.log.Warn("invalid status transition refused", zap.Stringer("from", from), zap.Stringer("to", to))
		return false
	}
	return true
}

func (e *Engine) emit(t event.EventType, payload any) {
	if e.queue != nil {
		e.queue.Emit(t, payload)
	}
}

func (e *Engine) sessionPayload(c *Context) *event.SessionPayload {
	return &event.SessionPayload{
		Attempts: c.Session.Attempts(),
		Spins:    c.Session.Spins(),
		Wins:     c.Session.Wins(),
		Elapsed:  e.now - c.Started,
	}
}

// publish mirrors session counters into the HUD registry
func (e *Engine) publish() {
	if e.statStatus == nil {
		return
	}
	s := e.ctx.Session
	e.statSpins.Store(int64(s.Spins()))
	e.statWins.Store(int64(s.Wins()))
	e.statAttempts.Store(int64(s.Attempts()))
	e.statStatus.Store(s.Status().String())
}
