// Package session tracks one game session: remaining attempts, the spin status machine and game over.
// A Session is owned by the engine loop and never shared; restart builds a new one.
package session

import "time"

// Status is the spin cycle state
type Status int

const (
	Idle Status = iota
	Spinning
	Resolving
	PlayingFeedback
	GameOver
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Spinning:
		return "Spinning"
	case Resolving:
		return "Resolving"
	case PlayingFeedback:
		return "PlayingFeedback"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

var validTransitions = map[Status][]Status{
	Idle:            {Spinning},
	Spinning:        {Resolving},
	Resolving:       {PlayingFeedback},
	PlayingFeedback: {Idle, GameOver},
}

// CanTransition checks if a status transition is valid
// GameOver has no exits; only a new Session leaves it
func CanTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Session holds counters for one session
type Session struct {
	status      Status
	statusSince time.Duration

	initial  int
	attempts int
	over     bool

	spins  int
	wins   int
	losses int
	fatals int
}

// New creates an idle session with initial attempts
func New(initialAttempts int) *Session {
	if initialAttempts < 0 {
		initialAttempts = 0
	}
	return &Session{
		initial:  initialAttempts,
		attempts: initialAttempts,
	}
}

// Status returns the current status
func (s *Session) Status() Status {
	return s.status
}

// StatusSince returns the virtual time the current status was entered
func (s *Session) StatusSince() time.Duration {
	return s.statusSince
}

// Transition attempts to move to a new status with validation
// Returns true if transition succeeded, false if transition is invalid
func (s *Session) Transition(to Status, now time.Duration) bool {
	if !CanTransition(s.status, to) {
		return false
	}
	s.status = to
	s.statusSince = now
	if to == Spinning {
		s.spins++
	}
	if to == GameOver {
		s.over = true
	}
	return true
}

// CanSpin reports whether a spin request would be accepted
func (s *Session) CanSpin() bool {
	return s.status == Idle && s.attempts > 0 && !s.over
}

// RecordWin counts a win; attempts are unchanged
func (s *Session) RecordWin() {
	s.wins++
}

// RecordLoss consumes one attempt
func (s *Session) RecordLoss() {
	s.losses++
	if s.attempts > 0 {
		s.attempts--
	}
}

// RecordFatal forfeits every remaining attempt
func (s *Session) RecordFatal() {
	s.fatals++
	s.attempts = 0
}

// Attempts returns attempts remaining
func (s *Session) Attempts() int {
	return s.attempts
}

// InitialAttempts returns the attempt count the session started with
func (s *Session) InitialAttempts() int {
	return s.initial
}

// IsOver reports whether the session reached its terminal state
func (s *Session) IsOver() bool {
	return s.over
}

// Spins returns accepted spin requests
func (s *Session) Spins() int { return s.spins }

// Wins returns spins classified as a win
func (s *Session) Wins() int { return s.wins }

// Losses returns spins classified as an ordinary loss
func (s *Session) Losses() int { return s.losses }

// Fatals returns spins ended by a reel error
func (s *Session) Fatals() int { return s.fatals }
