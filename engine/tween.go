package engine

import "time"

// Prop animates a single float property toward To
type Prop struct {
	Value *float64
	To    float64

	from float64
}

// Tween animates a set of properties over Duration after Delay
// Target is the owner key used by CancelAnimationsOf; use a pointer
type Tween struct {
	Target   any
	Props    []Prop
	Duration time.Duration
	Delay    time.Duration
	Ease     EaseFunc

	// Yoyo plays back to the start values after reaching To
	Yoyo bool
	// Repeat is the number of extra cycles, -1 repeats forever
	Repeat int

	OnStart    func()
	OnUpdate   func(progress float64)
	OnComplete func()

	elapsed  time.Duration
	started  bool
	reverse  bool
	cycles   int
	done     bool
	canceled bool
}

// Done reports whether the tween completed or was cancelled
func (t *Tween) Done() bool {
	return t.done
}

// Cancelled reports whether the tween was stopped before completing
func (t *Tween) Cancelled() bool {
	return t.canceled
}

// Cancel stops the tween where it is without firing OnComplete
func (t *Tween) Cancel() {
	if t.done {
		return
	}
	t.done = true
	t.canceled = true
}

// Total returns delay plus one full cycle
func (t *Tween) Total() time.Duration {
	return t.Delay + t.Duration
}

func (t *Tween) start() {
	t.started = true
	for i := range t.Props {
		t.Props[i].from = *t.Props[i].Value
	}
	if t.OnStart != nil {
		t.OnStart()
	}
}

func (t *Tween) apply(p float64) {
	e := p
	if t.Ease != nil {
		e = t.Ease(p)
	}
	for i := range t.Props {
		pr := &t.Props[i]
		if t.reverse {
			*pr.Value = pr.To + (pr.from-pr.To)*e
		} else {
			*pr.Value = pr.from + (pr.To-pr.from)*e
		}
	}
	if t.OnUpdate != nil {
		t.OnUpdate(p)
	}
}

// step advances the tween by dt; returns true when it has just completed
func (t *Tween) step(dt time.Duration) bool {
	if t.done {
		return false
	}

	if t.Delay > 0 {
		if dt < t.Delay {
			t.Delay -= dt
			return false
		}
		dt -= t.Delay
		t.Delay = 0
	}

	if !t.started {
		t.start()
		if t.done {
			return false
		}
	}

	if t.Duration <= 0 {
		t.apply(1)
		t.done = true
		return true
	}

	t.elapsed += dt
	for t.elapsed >= t.Duration {
		t.apply(1)
		if t.done {
			return false
		}
		t.elapsed -= t.Duration

		if t.Yoyo && !t.reverse {
			t.reverse = true
			continue
		}
		if t.Repeat < 0 || t.cycles < t.Repeat {
			t.cycles++
			t.reverse = false
			continue
		}

		t.elapsed = t.Duration
		t.done = true
		return true
	}

	t.apply(float64(t.elapsed) / float64(t.Duration))
	return false
}

// Animator owns running tweens and advances them on each tick
// Not safe for concurrent use; the owning loop serializes access
type Animator struct {
	tweens []*Tween
}

// NewAnimator creates an empty animator
func NewAnimator() *Animator {
	return &Animator{}
}

// Animate registers a tween; it starts on the next Update
func (a *Animator) Animate(t *Tween) *Tween {
	a.tweens = append(a.tweens, t)
	return t
}

// Update advances all tweens by dt and fires completion callbacks
// Tweens added from callbacks first advance on the following Update
func (a *Animator) Update(dt time.Duration) {
	snapshot := a.tweens[:len(a.tweens):len(a.tweens)]
	for _, t := range snapshot {
		if t.step(dt) && t.OnComplete != nil {
			t.OnComplete()
		}
	}

	live := a.tweens[:0]
	for _, t := range a.tweens {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = live
}

// CancelAnimationsOf stops every tween owned by target and returns the count
func (a *Animator) CancelAnimationsOf(target any) int {
	n := 0
	for _, t := range a.tweens {
		if !t.done && t.Target == target {
			t.Cancel()
			n++
		}
	}
	return n
}

// CancelAll stops every running tween; the list is compacted on the next Update
func (a *Animator) CancelAll() {
	for _, t := range a.tweens {
		t.Cancel()
	}
}

// Active returns the number of tweens still running
func (a *Animator) Active() int {
	n := 0
	for _, t := range a.tweens {
		if !t.done {
			n++
		}
	}
	return n
}
