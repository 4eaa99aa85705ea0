package engine

import (
	"container/heap"
	"time"
)

// Handle is a cancelable reference to a scheduled timer
type Handle struct {
	due      time.Duration
	seq      uint64
	interval time.Duration
	left     int // firings still owed, including the next one
	fired    int
	fn       func(i int)

	cancelled bool
	index     int // heap position, -1 when not queued
}

// Cancel stops all future firings; safe to call repeatedly and from inside the callback
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.cancelled = true
}

// Active reports whether the timer still owes at least one firing
func (h *Handle) Active() bool {
	return h != nil && !h.cancelled && h.left > 0
}

// Fired returns how many times the callback has run
func (h *Handle) Fired() int {
	return h.fired
}

type timerHeap []*Handle

func (th timerHeap) Len() int { return len(th) }

func (th timerHeap) Less(i, j int) bool {
	if th[i].due == th[j].due {
		return th[i].seq < th[j].seq
	}
	return th[i].due < th[j].due
}

func (th timerHeap) Swap(i, j int) {
	th[i], th[j] = th[j], th[i]
	th[i].index = i
	th[j].index = j
}

func (th *timerHeap) Push(x any) {
	h := x.(*Handle)
	h.index = len(*th)
	*th = append(*th, h)
}

func (th *timerHeap) Pop() any {
	old := *th
	n := len(old)
	h := old[n-1]
	old[n-1] = nil
	h.index = -1
	*th = old[:n-1]
	return h
}

// Scheduler runs one-shot and repeating callbacks against virtual time
// Time only moves when Advance is called, so a fixed-tick loop and a test drive it identically
// Not safe for concurrent use; the owning loop serializes access
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
}

// NewScheduler creates a scheduler at virtual time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns elapsed virtual time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// ScheduleOnce runs fn after delay
func (s *Scheduler) ScheduleOnce(delay time.Duration, fn func()) *Handle {
	return s.ScheduleRepeating(0, 1, delay, func(int) { fn() })
}

// ScheduleRepeating runs fn count times, first after startOffset then every interval
// fn receives the zero-based firing index
func (s *Scheduler) ScheduleRepeating(interval time.Duration, count int, startOffset time.Duration, fn func(i int)) *Handle {
	if startOffset < 0 {
		startOffset = 0
	}
	if interval < 0 {
		interval = 0
	}
	s.seq++
	h := &Handle{
		due:      s.now + startOffset,
		seq:      s.seq,
		interval: interval,
		left:     count,
		fn:       fn,
		index:    -1,
	}
	if count <= 0 {
		h.cancelled = true
		return h
	}
	heap.Push(&s.timers, h)
	return h
}

// Advance moves virtual time forward by dt, firing every due callback in (due, schedule order)
// Callbacks scheduled during Advance with a due time inside the window fire in the same call
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for len(s.timers) > 0 {
		h := s.timers[0]
		if h.due > target {
			break
		}
		heap.Pop(&s.timers)
		if h.cancelled {
			continue
		}

		s.now = h.due
		i := h.fired
		h.fired++
		h.left--
		h.fn(i)

		if h.left > 0 && !h.cancelled {
			// Zero interval repeaters step one tick at a time to keep Advance finite
			step := h.interval
			if step == 0 {
				step = 1
			}
			h.due += step
			s.seq++
			h.seq = s.seq
			heap.Push(&s.timers, h)
		}
	}

	s.now = target
}

// Pending returns the number of live timers
func (s *Scheduler) Pending() int {
	n := 0
	for _, h := range s.timers {
		if !h.cancelled {
			n++
		}
	}
	return n
}

// CancelAll drops every queued timer
func (s *Scheduler) CancelAll() {
	for _, h := range s.timers {
		h.cancelled = true
		h.index = -1
	}
	s.timers = s.timers[:0]
}
