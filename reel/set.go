package reel

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Set owns the reels of one session
type Set struct {
	Reels []*Reel
	log   *zap.Logger
}

// NewSet deals n shuffled strips
func NewSet(n int, rng *rand.Rand, log *zap.Logger) *Set {
	s := &Set{Reels: make([]*Reel, n), log: log}
	for i := range s.Reels {
		s.Reels[i] = New(i, Deal(rng), log)
	}
	return s
}

// Len returns the reel count
func (s *Set) Len() int {
	return len(s.Reels)
}

// Reset clears every outcome
func (s *Set) Reset() {
	for _, r := range s.Reels {
		r.Reset()
	}
}

// CancelAll stops every travel tween and invalidates pending settles
func (s *Set) CancelAll(anim Animator) {
	for _, r := range s.Reels {
		anim.CancelAnimationsOf(r)
		r.Reset()
	}
}

// Spinning returns the reels still awaiting a settle
func (s *Set) Spinning() []*Reel {
	var out []*Reel
	for _, r := range s.Reels {
		if r.Spinning() {
			out = append(out, r)
		}
	}
	return out
}

// Outcomes returns a copy of every reel's current outcome, indexed by reel id
func (s *Set) Outcomes() []Outcome {
	out := make([]Outcome, len(s.Reels))
	for i, r := range s.Reels {
		out[i] = r.Outcome()
	}
	return out
}
