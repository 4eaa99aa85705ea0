package engine

import (
	"testing"
	"time"
)

func TestScheduleOnce(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.ScheduleOnce(100*time.Millisecond, func() { at = append(at, s.Now()) })

	s.Advance(99 * time.Millisecond)
	if len(at) != 0 {
		t.Fatalf("fired early at %v", at)
	}
	s.Advance(1 * time.Millisecond)
	if len(at) != 1 || at[0] != 100*time.Millisecond {
		t.Fatalf("fired at %v, want [100ms]", at)
	}
	s.Advance(time.Second)
	if len(at) != 1 {
		t.Errorf("one-shot fired %d times", len(at))
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d", s.Pending())
	}
}

func TestScheduleOrderIsDueThenInsertion(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.ScheduleOnce(20*time.Millisecond, func() { order = append(order, "b") })
	s.ScheduleOnce(10*time.Millisecond, func() { order = append(order, "a") })
	s.ScheduleOnce(20*time.Millisecond, func() { order = append(order, "c") })

	s.Advance(time.Second)

	want := []string{"a", "b", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestScheduleRepeating(t *testing.T) {
	s := NewScheduler()
	var idx []int
	var at []time.Duration
	h := s.ScheduleRepeating(150*time.Millisecond, 5, 50*time.Millisecond, func(i int) {
		idx = append(idx, i)
		at = append(at, s.Now())
	})

	// Large single step still fires each occurrence at its own due time
	s.Advance(time.Second)

	if len(idx) != 5 {
		t.Fatalf("fired %d times, want 5", len(idx))
	}
	for i := range idx {
		if idx[i] != i {
			t.Errorf("firing %d got index %d", i, idx[i])
		}
		want := 50*time.Millisecond + time.Duration(i)*150*time.Millisecond
		if at[i] != want {
			t.Errorf("firing %d at %v, want %v", i, at[i], want)
		}
	}
	if h.Active() || h.Fired() != 5 {
		t.Errorf("handle active=%v fired=%d", h.Active(), h.Fired())
	}
}

func TestCancelFromCallback(t *testing.T) {
	s := NewScheduler()
	var h *Handle
	n := 0
	h = s.ScheduleRepeating(10*time.Millisecond, 10, 0, func(i int) {
		n++
		if i == 2 {
			h.Cancel()
		}
	})
	s.Advance(time.Second)
	if n != 3 {
		t.Errorf("fired %d times, want 3", n)
	}
	h.Cancel() // repeated cancel is harmless
}

func TestScheduleDuringAdvanceFiresInWindow(t *testing.T) {
	s := NewScheduler()
	var at time.Duration = -1
	s.ScheduleOnce(10*time.Millisecond, func() {
		s.ScheduleOnce(20*time.Millisecond, func() { at = s.Now() })
	})

	s.Advance(50 * time.Millisecond)
	if at != 30*time.Millisecond {
		t.Errorf("nested timer fired at %v, want 30ms", at)
	}
	if s.Now() != 50*time.Millisecond {
		t.Errorf("Now = %v", s.Now())
	}
}

func TestCancelAll(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.ScheduleOnce(10*time.Millisecond, func() { fired = true })
	s.ScheduleRepeating(5*time.Millisecond, 2, 0, func(int) { fired = true })
	s.CancelAll()
	s.Advance(time.Second)
	if fired || s.Pending() != 0 {
		t.Errorf("fired=%v pending=%d after CancelAll", fired, s.Pending())
	}
}

func TestZeroCountIsInactive(t *testing.T) {
	s := NewScheduler()
	h := s.ScheduleRepeating(time.Millisecond, 0, 0, func(int) { t.Error("zero-count timer fired") })
	s.Advance(time.Second)
	if h.Active() {
		t.Error("zero-count handle reports active")
	}
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	h.Cancel()
	if h.Active() {
		t.Error("nil handle active")
	}
}
