// Package feedback describes and plays the scripted win/lose sequences shown after a spin.
//
// A sequence is first built as a Script: a flat list of stages, each with a start offset,
// duration and trigger, plus the time the completion callback is due. Builders are pure so the
// timing can be checked without a clock. The Sequencer interprets a Script against the virtual
// scheduler and animator and owns every transient resource it spawns.
package feedback

import (
	"time"

	"github.com/lixenwraith/pharaoh-slot/audio"
	"github.com/lixenwraith/pharaoh-slot/constant"
	"github.com/lixenwraith/pharaoh-slot/scene"
)

// StageKind selects how the sequencer plays a stage
type StageKind int

const (
	// StageFade tweens a background layer's alpha to To
	StageFade StageKind = iota
	// StageFly tweens an actor's y to To
	StageFly
	// StageStrike fires Repeat beams from an actor every Interval, each living for Duration
	StageStrike
	// StageCue plays a sound cue at Start
	StageCue
)

func (k StageKind) String() string {
	switch k {
	case StageFade:
		return "fade"
	case StageFly:
		return "fly"
	case StageStrike:
		return "strike"
	case StageCue:
		return "cue"
	default:
		return "unknown"
	}
}

// Stage is one timed step of a script
type Stage struct {
	Kind  StageKind
	Actor int // actor index, -1 when not actor-bound
	Layer scene.LayerID

	Start    time.Duration
	Duration time.Duration
	To       float64

	Repeat   int
	Interval time.Duration

	// Cue plays with the stage; on a strike stage only with its first beam
	Cue    audio.Cue
	Marker string
}

// End returns when the stage's last visible effect is gone
func (s Stage) End() time.Duration {
	if s.Kind == StageStrike && s.Repeat > 0 {
		return s.Start + time.Duration(s.Repeat-1)*s.Interval + s.Duration
	}
	return s.Start + s.Duration
}

// Script is a complete sequence description
type Script struct {
	Name   string
	Stages []Stage

	// Completion is when the callback is due, relative to sequence start
	Completion time.Duration
	// CallbackActor is the actor whose fly tween carries the callback, -1 for a plain timer
	CallbackActor int
}

// WinTiming parameterizes the win sequence
type WinTiming struct {
	CrossFade time.Duration
	FlyOffY   float64
	Durations []time.Duration // per actor index
	Staggers  []time.Duration // per actor index
}

// LoseTiming parameterizes the lose sequence
type LoseTiming struct {
	StrikeCount int
	Interval    time.Duration
	Stagger     time.Duration // multiplied by actor index
	Flash       time.Duration
	Buffer      time.Duration
}

// DefaultWinTiming returns the stock win timings
func DefaultWinTiming() WinTiming {
	return WinTiming{
		CrossFade: constant.WinCrossFade,
		FlyOffY:   constant.WinFlyOffY,
		Durations: constant.WinFlyDurations[:],
		Staggers:  constant.WinFlyStaggers[:],
	}
}

// DefaultLoseTiming returns the stock lose timings
func DefaultLoseTiming() LoseTiming {
	return LoseTiming{
		StrikeCount: constant.StrikeCount,
		Interval:    constant.StrikeInterval,
		Stagger:     constant.StrikeStagger,
		Flash:       constant.FlashDuration,
		Buffer:      constant.LoseBuffer,
	}
}

func at(ds []time.Duration, i int) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	if i < len(ds) {
		return ds[i]
	}
	return ds[len(ds)-1]
}

// WinScript cross-fades night to day and flies every visible actor off the top
// The callback rides on the actor whose stagger+duration is largest; with no visible actor it follows the cross-fade
func WinScript(actors []*scene.Actor, t WinTiming) Script {
	s := Script{
		Name:          "win",
		CallbackActor: -1,
		Stages: []Stage{
			{Kind: StageCue, Actor: -1, Cue: audio.CueCoins},
			{Kind: StageFade, Actor: -1, Layer: scene.LayerNight, Duration: t.CrossFade, To: 0},
			{Kind: StageFade, Actor: -1, Layer: scene.LayerDay, Duration: t.CrossFade, To: 1},
		},
	}

	var last time.Duration
	for i, a := range actors {
		if !a.Eligible() {
			continue
		}
		st := Stage{
			Kind:     StageFly,
			Actor:    i,
			Start:    at(t.Staggers, i),
			Duration: at(t.Durations, i),
			To:       t.FlyOffY,
		}
		s.Stages = append(s.Stages, st)

		if end := st.End(); s.CallbackActor < 0 || end > last {
			last = end
			s.CallbackActor = i
		}
	}

	if s.CallbackActor < 0 {
		s.Completion = t.CrossFade
	} else {
		s.Completion = last
	}
	return s
}

// LoseScript schedules staggered strike bursts from every visible actor
// Thunder plays once, with the first strike of the first visible actor
// The callback is due after the last beam is gone plus a buffer; with no visible actor it is due at once
func LoseScript(actors []*scene.Actor, t LoseTiming) Script {
	s := Script{Name: "lose", CallbackActor: -1}

	var last time.Duration
	first := true
	for i, a := range actors {
		if !a.Eligible() {
			continue
		}
		st := Stage{
			Kind:     StageStrike,
			Actor:    i,
			Start:    time.Duration(i) * t.Stagger,
			Duration: t.Flash,
			Repeat:   t.StrikeCount,
			Interval: t.Interval,
		}
		if first {
			st.Cue = audio.CueThunder
			st.Marker = audio.MarkerThunderCut
			first = false
		}
		s.Stages = append(s.Stages, st)
		last = max(last, st.End())
	}

	if len(s.Stages) > 0 {
		s.Completion = last + t.Buffer
	}
	return s
}
