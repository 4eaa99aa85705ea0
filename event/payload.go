package event

import "time"

// GameEvent is a single queued event
type GameEvent struct {
	Type    EventType
	Payload any
}

// SessionPayload snapshots session counters at the time of the event
type SessionPayload struct {
	Attempts int
	Spins    int
	Wins     int
	Elapsed  time.Duration // virtual time since session start
}

// ReelSettledPayload carries one reel's outcome
type ReelSettledPayload struct {
	Reel   int
	Symbol string
	Err    error
}

// OutcomePayload carries the classified result of one spin cycle
type OutcomePayload struct {
	Classification string
	Symbols        []string
	Attempts       int
	CycleDuration  time.Duration
}
