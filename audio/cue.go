package audio

// Cue identifies a sound the game can trigger
type Cue int

const (
	CueNone Cue = iota
	CueSpinLoop
	CueUfoHum
	CueThunder
	CueCoins
)

// Markers select a named section of a cue
const (
	MarkerFastPart   = "fastPart"
	MarkerThunderCut = "thunderCut"
)

func (c Cue) String() string {
	switch c {
	case CueSpinLoop:
		return "spin"
	case CueUfoHum:
		return "ufo"
	case CueThunder:
		return "thunder"
	case CueCoins:
		return "coins"
	default:
		return "none"
	}
}

// Looping reports whether the cue repeats until stopped
func (c Cue) Looping() bool {
	return c == CueSpinLoop || c == CueUfoHum
}

// Player is the audio collaborator; every call is fire-and-forget
type Player interface {
	PlayCue(c Cue, marker string)
	StopCue(c Cue)
	StopAll()
	SetMuted(muted bool)
	Muted() bool
}

// NullPlayer discards every cue; used when no audio device is available and in headless runs
type NullPlayer struct {
	muted bool
}

func (p *NullPlayer) PlayCue(Cue, string) {}
func (p *NullPlayer) StopCue(Cue)         {}
func (p *NullPlayer) StopAll()            {}
func (p *NullPlayer) SetMuted(m bool)     { p.muted = m }
func (p *NullPlayer) Muted() bool         { return p.muted }

// Play records one PlayCue call
type Play struct {
	Cue    Cue
	Marker string
}

// Recorder keeps every call for inspection; not safe for concurrent use
type Recorder struct {
	Plays   []Play
	Stops   []Cue
	Playing map[Cue]bool
	muted   bool
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{Playing: make(map[Cue]bool)}
}

func (r *Recorder) PlayCue(c Cue, marker string) {
	r.Plays = append(r.Plays, Play{Cue: c, Marker: marker})
	if c.Looping() {
		r.Playing[c] = true
	}
}

func (r *Recorder) StopCue(c Cue) {
	r.Stops = append(r.Stops, c)
	delete(r.Playing, c)
}

func (r *Recorder) StopAll() {
	for c := range r.Playing {
		r.Stops = append(r.Stops, c)
	}
	clear(r.Playing)
}

func (r *Recorder) SetMuted(m bool) { r.muted = m }
func (r *Recorder) Muted() bool     { return r.muted }

// Count returns how many times c was played with marker
func (r *Recorder) Count(c Cue, marker string) int {
	n := 0
	for _, p := range r.Plays {
		if p.Cue == c && p.Marker == marker {
			n++
		}
	}
	return n
}
