package session

import (
	"testing"
	"time"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{Idle, "Idle"},
		{Spinning, "Spinning"},
		{Resolving, "Resolving"},
		{PlayingFeedback, "PlayingFeedback"},
		{GameOver, "GameOver"},
		{Status(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{Idle, Spinning, true},
		{Spinning, Resolving, true},
		{Resolving, PlayingFeedback, true},
		{PlayingFeedback, Idle, true},
		{PlayingFeedback, GameOver, true},

		{Idle, Resolving, false},
		{Idle, GameOver, false},
		{Spinning, Spinning, false},
		{Spinning, Idle, false},
		{Resolving, Idle, false},
		{GameOver, Idle, false},
		{GameOver, Spinning, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestFullCycle(t *testing.T) {
	s := New(3)
	steps := []Status{Spinning, Resolving, PlayingFeedback, Idle}
	for i, to := range steps {
		if !s.Transition(to, time.Duration(i)*time.Second) {
			t.Fatalf("Transition(%v) refused from %v", to, s.Status())
		}
	}
	if s.Spins() != 1 {
		t.Errorf("Spins() = %d, want 1", s.Spins())
	}
	if s.StatusSince() != 3*time.Second {
		t.Errorf("StatusSince() = %v, want 3s", s.StatusSince())
	}
	t.Logf("✓ Idle -> Spinning -> Resolving -> PlayingFeedback -> Idle")
}

func TestAttemptAccounting(t *testing.T) {
	s := New(3)

	s.RecordWin()
	if s.Attempts() != 3 {
		t.Errorf("after win attempts = %d, want 3", s.Attempts())
	}

	s.RecordLoss()
	if s.Attempts() != 2 {
		t.Errorf("after loss attempts = %d, want 2", s.Attempts())
	}

	s.RecordFatal()
	if s.Attempts() != 0 {
		t.Errorf("after fatal attempts = %d, want 0", s.Attempts())
	}

	s.RecordLoss()
	if s.Attempts() != 0 {
		t.Errorf("attempts went negative: %d", s.Attempts())
	}
	if s.Wins() != 1 || s.Losses() != 2 || s.Fatals() != 1 {
		t.Errorf("counters wins=%d losses=%d fatals=%d", s.Wins(), s.Losses(), s.Fatals())
	}
}

func TestCanSpin(t *testing.T) {
	s := New(1)
	if !s.CanSpin() {
		t.Fatal("fresh session should accept a spin")
	}

	s.Transition(Spinning, 0)
	if s.CanSpin() {
		t.Error("spinning session accepted a spin")
	}

	s.Transition(Resolving, 0)
	s.RecordLoss()
	s.Transition(PlayingFeedback, 0)
	s.Transition(GameOver, 0)

	if !s.IsOver() {
		t.Error("GameOver should mark the session over")
	}
	if s.CanSpin() {
		t.Error("finished session accepted a spin")
	}
	if s.Transition(Idle, 0) {
		t.Error("GameOver must be terminal")
	}

	if New(0).CanSpin() {
		t.Error("zero-attempt session accepted a spin")
	}
}
