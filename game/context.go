package game

import (
	"time"

	"github.com/lixenwraith/pharaoh-slot/engine"
	"github.com/lixenwraith/pharaoh-slot/feedback"
	"github.com/lixenwraith/pharaoh-slot/reel"
	"github.com/lixenwraith/pharaoh-slot/scene"
	"github.com/lixenwraith/pharaoh-slot/session"
)

// Context is everything one session owns
// Restart discards the whole context; closures compare against the engine's current context before acting
type Context struct {
	Gen     uint64
	Started time.Duration

	Session   *session.Session
	Cycle     *SpinCycle
	Reels     *reel.Set
	Scene     *scene.Scene
	Scheduler *engine.Scheduler
	Animator  *engine.Animator
	Sequencer *feedback.Sequencer
}

func (e *Engine) newContext(reels *reel.Set) *Context {
	e.gen++
	sched := engine.NewScheduler()
	anim := engine.NewAnimator()
	sc := scene.New()

	return &Context{
		Gen:       e.gen,
		Started:   e.now,
		Session:   session.New(e.cfg.Attempts),
		Reels:     reels,
		Scene:     sc,
		Scheduler: sched,
		Animator:  anim,
		Sequencer: feedback.NewSequencer(sched, anim, e.cues, sc, e.cfg.Win, e.cfg.Lose, e.log.Named("feedback")),
	}
}

// release stops every timer, tween and beam the context still holds
func (c *Context) release() {
	c.Sequencer.Cancel()
	c.Reels.CancelAll(c.Animator)
	c.Animator.CancelAll()
	c.Scheduler.CancelAll()
	c.Scene.ClearBeams()
}
