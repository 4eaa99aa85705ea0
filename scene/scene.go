// Package scene holds the presentation state the game animates and the renderer draws.
// Collections are typed and separately owned: mascots, background layers, beams and banners never share a container.
package scene

import (
	"github.com/lixenwraith/pharaoh-slot/constant"
)

// LayerID names a background layer
type LayerID int

const (
	LayerDay LayerID = iota
	LayerNight
)

// Layer is a full-canvas background whose only animated property is alpha
type Layer struct {
	ID    LayerID
	Alpha float64
}

// Actor is a mascot
type Actor struct {
	ID    int
	X     float64
	Y     float64
	Alpha float64
	Scale float64
}

// Eligible reports whether the actor takes part in feedback; invisible mascots are skipped
func (a *Actor) Eligible() bool {
	return a.Alpha > 0
}

// Beam is a transient lightning bolt from a mascot down to the reels
type Beam struct {
	ID    uint64
	Actor int
	X1    float64
	Y1    float64
	X2    float64
	Y2    float64
}

// Banner is a centered fading message
type Banner struct {
	Text  string
	Alpha float64
}

// EndScreen is the terminal overlay with a restart affordance
type EndScreen struct {
	Visible bool
	Text    string
	Hint    string
}

// Scene is the full presentation state of one session
type Scene struct {
	Day   Layer
	Night Layer

	Mascots []*Actor
	Beams   []*Beam

	Banner Banner
	End    EndScreen

	// Shake is the camera shake intensity, decayed by a tween
	Shake float64

	nextBeam uint64
}

// New builds the pre-entrance scene: day sky, mascots parked above the canvas and invisible
func New() *Scene {
	s := &Scene{
		Day:   Layer{ID: LayerDay, Alpha: 1},
		Night: Layer{ID: LayerNight, Alpha: 0},
	}
	s.Mascots = make([]*Actor, constant.MascotCount)
	for i := range s.Mascots {
		s.Mascots[i] = &Actor{
			ID:    i,
			X:     constant.MascotX[i],
			Y:     constant.MascotStartY,
			Alpha: 0,
			Scale: constant.MascotRestScale[i],
		}
	}
	return s
}

// Layer returns the layer for id
func (s *Scene) Layer(id LayerID) *Layer {
	if id == LayerNight {
		return &s.Night
	}
	return &s.Day
}

// SpawnBeam adds a beam from the actor down to the reel tops
func (s *Scene) SpawnBeam(a *Actor) *Beam {
	s.nextBeam++
	b := &Beam{
		ID:    s.nextBeam,
		Actor: a.ID,
		X1:    a.X,
		Y1:    a.Y + 20,
		X2:    a.X,
		Y2:    constant.ReelTop,
	}
	s.Beams = append(s.Beams, b)
	return b
}

// DestroyBeam removes b; returns false if it was already gone
func (s *Scene) DestroyBeam(b *Beam) bool {
	for i, x := range s.Beams {
		if x == b {
			s.Beams = append(s.Beams[:i], s.Beams[i+1:]...)
			return true
		}
	}
	return false
}

// ClearBeams removes every beam
func (s *Scene) ClearBeams() {
	s.Beams = s.Beams[:0]
}

// ShowEnd raises the end screen
func (s *Scene) ShowEnd(text, hint string) {
	s.End = EndScreen{Visible: true, Text: text, Hint: hint}
}
