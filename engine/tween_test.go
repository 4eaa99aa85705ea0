package engine

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func run(a *Animator, ticks int, dt time.Duration) {
	for i := 0; i < ticks; i++ {
		a.Update(dt)
	}
}

func TestTweenLinear(t *testing.T) {
	a := NewAnimator()
	v := 0.0
	done := 0
	a.Animate(&Tween{
		Props:      []Prop{{Value: &v, To: 100}},
		Duration:   100 * time.Millisecond,
		OnComplete: func() { done++ },
	})

	run(a, 5, 10*time.Millisecond)
	if !near(v, 50) {
		t.Errorf("v at 50ms = %v", v)
	}
	run(a, 5, 10*time.Millisecond)
	if !near(v, 100) || done != 1 {
		t.Errorf("v=%v done=%d at 100ms", v, done)
	}
	run(a, 5, 10*time.Millisecond)
	if done != 1 || a.Active() != 0 {
		t.Errorf("done=%d active=%d after completion", done, a.Active())
	}
}

func TestTweenDelaySpillsIntoElapsed(t *testing.T) {
	a := NewAnimator()
	v := 0.0
	started := false
	a.Animate(&Tween{
		Props:    []Prop{{Value: &v, To: 10}},
		Duration: 100 * time.Millisecond,
		Delay:    30 * time.Millisecond,
		OnStart:  func() { started = true },
	})

	a.Update(20 * time.Millisecond)
	if started || v != 0 {
		t.Fatalf("started during delay: v=%v", v)
	}
	a.Update(20 * time.Millisecond) // 10ms of delay left, 10ms spill
	if !started || !near(v, 1) {
		t.Errorf("after spill v = %v, want 1", v)
	}
}

func TestTweenCapturesStartValueOnStart(t *testing.T) {
	a := NewAnimator()
	v := 0.0
	a.Animate(&Tween{
		Props:    []Prop{{Value: &v, To: 10}},
		Duration: 100 * time.Millisecond,
		Delay:    50 * time.Millisecond,
	})
	v = 5 // changed before the delay elapses
	run(a, 10, 10*time.Millisecond)
	if !near(v, 7.5) {
		t.Errorf("v = %v, want 7.5 (from 5 at start)", v)
	}
}

func TestTweenYoyoRepeat(t *testing.T) {
	a := NewAnimator()
	v := 0.0
	done := false
	a.Animate(&Tween{
		Props:      []Prop{{Value: &v, To: 10}},
		Duration:   100 * time.Millisecond,
		Yoyo:       true,
		Repeat:     1,
		OnComplete: func() { done = true },
	})

	run(a, 10, 10*time.Millisecond)
	if !near(v, 10) {
		t.Errorf("peak v = %v", v)
	}
	run(a, 10, 10*time.Millisecond)
	if !near(v, 0) {
		t.Errorf("after yoyo v = %v", v)
	}
	run(a, 10, 10*time.Millisecond)
	if !near(v, 10) || done {
		t.Errorf("second cycle v = %v done = %v", v, done)
	}
	run(a, 10, 10*time.Millisecond)
	if !near(v, 0) || !done {
		t.Errorf("final v = %v done = %v", v, done)
	}
}

func TestTweenInfiniteRepeatNeverCompletes(t *testing.T) {
	a := NewAnimator()
	v := 0.0
	a.Animate(&Tween{
		Props:    []Prop{{Value: &v, To: 1}},
		Duration: 10 * time.Millisecond,
		Yoyo:     true,
		Repeat:   -1,
	})
	run(a, 1000, 7*time.Millisecond)
	if a.Active() != 1 {
		t.Error("infinite tween finished")
	}
}

func TestTweenZeroDurationCompletesImmediately(t *testing.T) {
	a := NewAnimator()
	v := 3.0
	done := false
	a.Animate(&Tween{Props: []Prop{{Value: &v, To: 9}}, OnComplete: func() { done = true }})
	a.Update(0)
	if !near(v, 9) || !done {
		t.Errorf("v=%v done=%v", v, done)
	}
}

func TestCancelAnimationsOf(t *testing.T) {
	a := NewAnimator()
	x, y := 0.0, 0.0
	owner := &x
	completed := false
	a.Animate(&Tween{Target: owner, Props: []Prop{{Value: &x, To: 1}}, Duration: 100 * time.Millisecond, OnComplete: func() { completed = true }})
	a.Animate(&Tween{Target: &y, Props: []Prop{{Value: &y, To: 1}}, Duration: 100 * time.Millisecond})

	a.Update(50 * time.Millisecond)
	if n := a.CancelAnimationsOf(owner); n != 1 {
		t.Fatalf("cancelled %d", n)
	}
	frozen := x
	a.Update(100 * time.Millisecond)
	if x != frozen || completed {
		t.Errorf("cancelled tween kept running: x=%v completed=%v", x, completed)
	}
	if !near(y, 1) {
		t.Errorf("unrelated tween y = %v", y)
	}
}

func TestTweenAddedInCallbackStartsNextUpdate(t *testing.T) {
	a := NewAnimator()
	v, w := 0.0, 0.0
	a.Animate(&Tween{
		Props:    []Prop{{Value: &v, To: 1}},
		Duration: 10 * time.Millisecond,
		OnComplete: func() {
			a.Animate(&Tween{Props: []Prop{{Value: &w, To: 1}}, Duration: 10 * time.Millisecond})
		},
	})

	a.Update(10 * time.Millisecond)
	if w != 0 {
		t.Fatalf("chained tween advanced in the same update: w=%v", w)
	}
	a.Update(5 * time.Millisecond)
	if !near(w, 0.5) {
		t.Errorf("chained tween w = %v, want 0.5", w)
	}
}

func TestEasingEndpoints(t *testing.T) {
	for _, name := range []string{"linear", "quad.in", "quad.out", "quad.inout", "cubic.in", "cubic.out", "sine.inout"} {
		f := EaseByName(name)
		if !near(f(0), 0) || !near(f(1), 1) {
			t.Errorf("%s: f(0)=%v f(1)=%v", name, f(0), f(1))
		}
	}
	if !near(CubicOut(0.5), 0.875) {
		t.Errorf("CubicOut(0.5) = %v", CubicOut(0.5))
	}
}
