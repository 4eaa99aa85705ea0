package game

import (
	"github.com/lixenwraith/pharaoh-slot/event"
)

// Handler feeds queued input events into the engine
// Runs inside the clock scheduler's dispatch phase, which already holds the engine lock
type Handler struct {
	engine *Engine
}

// NewHandler creates the input handler for e
func NewHandler(e *Engine) *Handler {
	return &Handler{engine: e}
}

// EventTypes implements event.Handler
func (h *Handler) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSpinRequested,
		event.EventRestartRequested,
	}
}

// HandleEvent implements event.Handler
func (h *Handler) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventSpinRequested:
		h.engine.RequestSpin()
	case event.EventRestartRequested:
		h.engine.Restart()
	}
}
