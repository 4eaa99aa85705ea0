// Package device plays cues through the system speaker.
// It is the only package that links the platform audio backend.
package device

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/pharaoh-slot/audio"
	"github.com/lixenwraith/pharaoh-slot/parameter"
)

// Speaker plays synthesized cues through the system speaker
// One-shot cues are added to the mixer and drain on their own; looping cues keep a Ctrl so they can be stopped
type Speaker struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	master      *beep.Ctrl
	loops       map[audio.Cue]*beep.Ctrl
	cache       map[string]*beep.Buffer
	muted       bool
	initialized bool
	log         *zap.Logger
}

// NewSpeaker creates a player; call Init before use
func NewSpeaker(log *zap.Logger) *Speaker {
	mixer := &beep.Mixer{}
	return &Speaker{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  mixer,
		master: &beep.Ctrl{Streamer: audio.NewVolume(mixer, parameter.AudioMasterVolume)},
		loops:  make(map[audio.Cue]*beep.Ctrl),
		cache:  make(map[string]*beep.Buffer),
		log:    log,
	}
}

// Init opens the speaker and starts the mixer
func (p *Speaker) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	p.master.Paused = p.muted
	speaker.Play(p.master)
	p.initialized = true
	return nil
}

// Close stops all sounds and closes the speaker
func (p *Speaker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	clear(p.loops)
	p.initialized = false
}

// streamer returns a fresh pass over the cached render of cue/marker
func (p *Speaker) streamer(c audio.Cue, marker string) beep.StreamSeeker {
	key := c.String() + ":" + marker
	buf, ok := p.cache[key]
	if !ok {
		s := audio.BuildCue(c, marker, p.rate)
		if s == nil {
			return nil
		}
		buf = beep.NewBuffer(beep.Format{SampleRate: p.rate, NumChannels: parameter.AudioChannels, Precision: 2})
		buf.Append(s)
		p.cache[key] = buf
	}
	return buf.Streamer(0, buf.Len())
}

// PlayCue starts a cue; a looping cue already playing is left alone
func (p *Speaker) PlayCue(c audio.Cue, marker string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	if c.Looping() {
		if ctrl, ok := p.loops[c]; ok && !ctrl.Paused {
			return
		}
	}

	s := p.streamer(c, marker)
	if s == nil {
		p.log.Debug("unknown cue", zap.Stringer("cue", c))
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if c.Looping() {
		ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, s)}
		p.loops[c] = ctrl
		p.mixer.Add(ctrl)
		return
	}
	p.mixer.Add(s)
}

// StopCue stops a looping cue; one-shots run to their end
func (p *Speaker) StopCue(c audio.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctrl, ok := p.loops[c]
	if !ok {
		return
	}
	delete(p.loops, c)

	speaker.Lock()
	ctrl.Paused = true
	ctrl.Streamer = nil // mixer drops it on the next pass
	speaker.Unlock()
}

// StopAll silences every playing cue
func (p *Speaker) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	clear(p.loops)
}

// SetMuted pauses the master output without dropping cues
func (p *Speaker) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.master.Paused = muted
	speaker.Unlock()
}

// Muted reports the mute state
func (p *Speaker) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}
