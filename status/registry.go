package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Well-known keys written by the game and read by the HUD
const (
	KeyTicks    = "engine.ticks"
	KeySpins    = "session.spins"
	KeyWins     = "session.wins"
	KeyAttempts = "session.attempts"
	KeyStatus   = "session.status"
	KeyOutcome  = "spin.outcome"
	KeyAudio    = "audio.state"
)

// Registry is the HUD status facade
// The game loop writes through cached pointers; the renderer reads from its own goroutine
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Line formats the selected keys as "key=value" pairs for the status bar
// Missing keys are skipped
func (r *Registry) Line(keys ...string) string {
	var b strings.Builder
	for _, k := range keys {
		var v string
		switch {
		case r.Strings.Has(k):
			v = r.Strings.Get(k).Load()
		case r.Ints.Has(k):
			v = fmt.Sprint(r.Ints.Get(k).Load())
		default:
			continue
		}
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		b.WriteString(k[strings.LastIndexByte(k, '.')+1:])
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}
