package feedback

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/pharaoh-slot/audio"
	"github.com/lixenwraith/pharaoh-slot/engine"
	"github.com/lixenwraith/pharaoh-slot/scene"
)

// Timer is the scheduling collaborator
type Timer interface {
	ScheduleOnce(delay time.Duration, fn func()) *engine.Handle
	ScheduleRepeating(interval time.Duration, count int, startOffset time.Duration, fn func(i int)) *engine.Handle
}

// Animator is the tween collaborator
type Animator interface {
	Animate(t *engine.Tween) *engine.Tween
	CancelAnimationsOf(target any) int
}

// CuePlayer is the audio collaborator
type CuePlayer interface {
	PlayCue(c audio.Cue, marker string)
}

// Resources tracks everything one sequence invocation spawned
type Resources struct {
	timers []*engine.Handle
	tweens []*engine.Tween
	beams  []*scene.Beam
}

// Len returns the number of tracked resources
func (r *Resources) Len() int {
	return len(r.timers) + len(r.tweens) + len(r.beams)
}

// Timers returns the tracked timer handles
func (r *Resources) Timers() []*engine.Handle { return r.timers }

// Tweens returns the tracked tweens
func (r *Resources) Tweens() []*engine.Tween { return r.tweens }

// Beams returns the beams currently alive
func (r *Resources) Beams() []*scene.Beam { return r.beams }

// Pending returns timers that still owe a firing and beams still on screen
func (r *Resources) Pending() int {
	n := len(r.beams)
	for _, h := range r.timers {
		if h.Active() {
			n++
		}
	}
	for _, t := range r.tweens {
		if !t.Done() {
			n++
		}
	}
	return n
}

func (r *Resources) dropBeam(b *scene.Beam) {
	for i, x := range r.beams {
		if x == b {
			r.beams = append(r.beams[:i], r.beams[i+1:]...)
			return
		}
	}
}

// release cancels every timer and tween and destroys every beam, leaving the collection empty
func (r *Resources) release(sc *scene.Scene) {
	for _, h := range r.timers {
		h.Cancel()
	}
	for _, t := range r.tweens {
		t.Cancel()
	}
	for _, b := range r.beams {
		sc.DestroyBeam(b)
	}
	r.timers = nil
	r.tweens = nil
	r.beams = nil
}

// Sequencer plays one script at a time; starting another destroys whatever the previous one left behind
type Sequencer struct {
	timer Timer
	anim  Animator
	cues  CuePlayer
	scene *scene.Scene

	win  WinTiming
	lose LoseTiming

	res    *Resources
	seq    uint64
	active bool

	log *zap.Logger
}

// NewSequencer creates a sequencer over the given collaborators
func NewSequencer(timer Timer, anim Animator, cues CuePlayer, sc *scene.Scene, win WinTiming, lose LoseTiming, log *zap.Logger) *Sequencer {
	return &Sequencer{
		timer: timer,
		anim:  anim,
		cues:  cues,
		scene: sc,
		win:   win,
		lose:  lose,
		res:   &Resources{},
		log:   log,
	}
}

// Resources returns the active invocation's resource collection
func (s *Sequencer) Resources() *Resources {
	return s.res
}

// Active reports whether a sequence is waiting on its callback
func (s *Sequencer) Active() bool {
	return s.active
}

// PlayWin plays the win sequence for the current scene
func (s *Sequencer) PlayWin(cb func()) Script {
	script := WinScript(s.scene.Mascots, s.win)
	s.Play(script, cb)
	return script
}

// PlayLose plays the lose sequence for the current scene
func (s *Sequencer) PlayLose(cb func()) Script {
	script := LoseScript(s.scene.Mascots, s.lose)
	s.Play(script, cb)
	return script
}

// Cancel destroys every resource of the running sequence; its callback never fires
func (s *Sequencer) Cancel() {
	s.seq++
	s.active = false
	s.res.release(s.scene)
	s.res = &Resources{}
}

// Play interprets script; cb fires exactly once when the script completes, unless cancelled first
func (s *Sequencer) Play(script Script, cb func()) {
	s.Cancel()

	id := s.seq
	res := s.res
	s.active = true

	finish := func() {
		if id != s.seq || !s.active {
			return
		}
		s.active = false
		s.log.Debug("sequence complete", zap.String("script", script.Name), zap.Int("pending", res.Pending()))
		if cb != nil {
			cb()
		}
	}

	s.log.Debug("sequence start",
		zap.String("script", script.Name),
		zap.Int("stages", len(script.Stages)),
		zap.Duration("completion", script.Completion),
		zap.Int("callback_actor", script.CallbackActor),
	)

	for _, st := range script.Stages {
		switch st.Kind {
		case StageCue:
			s.playCue(res, st)

		case StageFade:
			layer := s.scene.Layer(st.Layer)
			s.anim.CancelAnimationsOf(layer)
			res.tweens = append(res.tweens, s.anim.Animate(&engine.Tween{
				Target:   layer,
				Props:    []engine.Prop{{Value: &layer.Alpha, To: st.To}},
				Delay:    st.Start,
				Duration: st.Duration,
				Ease:     engine.Linear,
			}))

		case StageFly:
			actor := s.actor(st.Actor)
			if actor == nil {
				continue
			}
			// Stop hover and entrance tweens so the flight starts from where the actor is
			s.anim.CancelAnimationsOf(actor)
			tw := &engine.Tween{
				Target:   actor,
				Props:    []engine.Prop{{Value: &actor.Y, To: st.To}, {Value: &actor.Alpha, To: 0}},
				Delay:    st.Start,
				Duration: st.Duration,
				Ease:     engine.QuadIn,
			}
			if st.Actor == script.CallbackActor {
				tw.OnComplete = finish
			}
			res.tweens = append(res.tweens, s.anim.Animate(tw))

		case StageStrike:
			actor := s.actor(st.Actor)
			if actor == nil {
				continue
			}
			s.strike(res, st, actor)
		}
	}

	if script.CallbackActor < 0 {
		if script.Completion <= 0 {
			finish()
			return
		}
		res.timers = append(res.timers, s.timer.ScheduleOnce(script.Completion, finish))
	}
}

func (s *Sequencer) actor(i int) *scene.Actor {
	if i < 0 || i >= len(s.scene.Mascots) {
		return nil
	}
	return s.scene.Mascots[i]
}

func (s *Sequencer) playCue(res *Resources, st Stage) {
	if st.Start <= 0 {
		s.cues.PlayCue(st.Cue, st.Marker)
		return
	}
	res.timers = append(res.timers, s.timer.ScheduleOnce(st.Start, func() {
		s.cues.PlayCue(st.Cue, st.Marker)
	}))
}

// strike schedules the stage's beams; each beam destroys itself after the flash
func (s *Sequencer) strike(res *Resources, st Stage, actor *scene.Actor) {
	h := s.timer.ScheduleRepeating(st.Interval, st.Repeat, st.Start, func(i int) {
		beam := s.scene.SpawnBeam(actor)
		res.beams = append(res.beams, beam)

		if i == 0 && st.Cue != audio.CueNone {
			s.cues.PlayCue(st.Cue, st.Marker)
		}

		res.timers = append(res.timers, s.timer.ScheduleOnce(st.Duration, func() {
			s.scene.DestroyBeam(beam)
			res.dropBeam(beam)
		}))
	})
	res.timers = append(res.timers, h)
}
