package event

// EventType represents the type of game event
type EventType int

const (
	// EventTick is reserved; never pushed
	EventTick EventType = iota

	// === Input Event ===

	// EventSpinRequested asks the engine to start a spin
	// Trigger: space/enter, mouse click on idle board, simulator autoplay
	// Consumer: game.Handler | Payload: nil
	EventSpinRequested

	// EventRestartRequested rebuilds the session from scratch
	// Trigger: r key, click on the end screen
	// Consumer: game.Handler | Payload: nil
	EventRestartRequested

	// === Engine Event ===

	// EventSessionStarted fires when a fresh session context is built
	// Trigger: engine construction, restart
	// Consumer: metrics.Collector, status HUD | Payload: *SessionPayload
	EventSessionStarted

	// EventSpinStarted fires once per accepted spin request
	// Trigger: game.Engine.RequestSpin
	// Consumer: metrics.Collector | Payload: *SessionPayload
	EventSpinStarted

	// EventReelSettled fires once per reel per spin
	// Trigger: reel settle notification
	// Consumer: metrics.Collector | Payload: *ReelSettledPayload
	EventReelSettled

	// EventOutcomeClassified fires when the completion barrier closes
	// Trigger: game.Engine after classification
	// Consumer: metrics.Collector, simulator | Payload: *OutcomePayload
	EventOutcomeClassified

	// EventFeedbackComplete fires when the feedback sequence callback runs
	// Trigger: feedback.Sequencer completion
	// Consumer: metrics.Collector | Payload: *SessionPayload
	EventFeedbackComplete

	// EventGameOver fires when the session reaches its terminal state
	// Trigger: post-feedback with zero attempts
	// Consumer: metrics.Collector, simulator | Payload: *SessionPayload
	EventGameOver
)
