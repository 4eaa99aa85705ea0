package engine

import (
	"sync"
	"testing"
	"time"
)

// fakeSource is a settable TimeSource
type fakeSource struct {
	mu  sync.RWMutex
	now time.Time
}

func newFakeSource(start time.Time) *fakeSource {
	return &fakeSource{now: start}
}

func (f *fakeSource) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

func (f *fakeSource) SetTime(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

func (f *fakeSource) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}

	// Check that the time has a monotonic component
	// In Go, time.Now() includes a monotonic clock reading by default
	diff := t2.Sub(t1)
	if diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestFakeSource(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := newFakeSource(startTime)

	// Test initial time
	now := mock.Now()
	if !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	// Test SetTime
	newTime := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(newTime)
	now = mock.Now()
	if !now.Equal(newTime) {
		t.Errorf("Expected time to be %v after SetTime, got %v", newTime, now)
	}

	// Test Advance
	mock.Advance(1 * time.Hour)
	now = mock.Now()
	expected := newTime.Add(1 * time.Hour)
	if !now.Equal(expected) {
		t.Errorf("Expected time to be %v after Advance, got %v", expected, now)
	}

	// Test multiple advances
	mock.Advance(30 * time.Minute)
	mock.Advance(15 * time.Minute)
	now = mock.Now()
	expected = newTime.Add(1*time.Hour + 30*time.Minute + 15*time.Minute)
	if !now.Equal(expected) {
		t.Errorf("Expected time to be %v after multiple advances, got %v", expected, now)
	}
}

func TestFakeSourceConcurrency(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := newFakeSource(startTime)

	// Test concurrent reads and writes
	done := make(chan bool)

	// Multiple readers
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
			done <- true
		}()
	}

	// Multiple writers
	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				mock.Advance(1 * time.Millisecond)
			}
			done <- true
		}()
	}

	// Wait for all goroutines to complete
	for i := 0; i < 15; i++ {
		<-done
	}

	// Verify the time advanced by 5 * 50 * 1ms = 250ms
	expected := startTime.Add(250 * time.Millisecond)
	now := mock.Now()
	if !now.Equal(expected) {
		t.Errorf("Expected time to be %v after concurrent operations, got %v", expected, now)
	}
}

func TestTimeSourceInterface(t *testing.T) {
	var _ TimeSource = &MonotonicTimeProvider{}
	var _ TimeSource = &fakeSource{}
	var _ TimeSource = &PausableClock{}
}

func TestPausableClockFreezesWhilePaused(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := newFakeSource(start)
	pc := NewPausableClockWithSource(mock)

	mock.Advance(100 * time.Millisecond)
	if got := pc.Now().Sub(start); got != 100*time.Millisecond {
		t.Fatalf("game elapsed = %v, want 100ms", got)
	}

	if !pc.Toggle() {
		t.Fatal("Toggle should report paused")
	}
	mock.Advance(time.Second)
	if got := pc.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("game time moved while paused: %v", got)
	}
	if got := pc.TotalPauseDuration(); got != time.Second {
		t.Errorf("pause in progress = %v, want 1s", got)
	}

	if pc.Toggle() {
		t.Fatal("Toggle should report resumed")
	}
	mock.Advance(50 * time.Millisecond)
	if got := pc.Now().Sub(start); got != 150*time.Millisecond {
		t.Errorf("game elapsed after resume = %v, want 150ms", got)
	}
	if got := pc.RealTime().Sub(start); got != 1150*time.Millisecond {
		t.Errorf("real elapsed = %v", got)
	}
}

func TestPausableClockRepeatedPauseIsNoop(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := newFakeSource(start)
	pc := NewPausableClockWithSource(mock)

	pc.Pause()
	mock.Advance(200 * time.Millisecond)
	pc.Pause() // must not restart the pause window
	mock.Advance(200 * time.Millisecond)
	pc.Resume()
	pc.Resume()

	if got := pc.TotalPauseDuration(); got != 400*time.Millisecond {
		t.Errorf("total pause = %v, want 400ms", got)
	}
	if pc.IsPaused() {
		t.Error("clock still paused")
	}
}
