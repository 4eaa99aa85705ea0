package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameUpdateInterval is the game logic update interval (clock tick)
	// Tweens and timers advance by exactly this much per tick
	GameUpdateInterval = 16 * time.Millisecond

	// SimStepInterval is the virtual tick used by the headless simulator
	SimStepInterval = 10 * time.Millisecond

	// SimSessionTimeout bounds a single simulated session in virtual time
	SimSessionTimeout = 30 * time.Minute
)

// Event queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Session defaults
const (
	// DefaultAttempts is the number of spins a fresh session starts with
	DefaultAttempts = 3

	// DefaultSettleTimeout forces a stalled reel to settle with an error
	// Zero disables the watchdog
	DefaultSettleTimeout = 10 * time.Second
)

// Simulator defaults
const (
	DefaultSimSessions = 1000
	DefaultSimWorkers  = 8
	DefaultSimMaxSpins = 100
)
