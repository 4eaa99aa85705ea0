package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/pharaoh-slot/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000), uint64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// NewVolume wraps s with a linear volume; math.Log2(0) is -Inf so zero is silent
func NewVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// section is a marker's slice of a cue
type section struct {
	offset   time.Duration
	duration time.Duration
}

// cueLength returns the full single-pass length of a cue
func cueLength(c Cue) time.Duration {
	switch c {
	case CueSpinLoop:
		return parameter.SpinLoopDuration
	case CueUfoHum:
		return parameter.UfoHumDuration
	case CueThunder:
		return parameter.ThunderDuration
	case CueCoins:
		return parameter.CoinSoundNote1Duration + parameter.CoinSoundNote2Duration
	default:
		return 0
	}
}

// markerSection resolves a marker; unknown markers play the whole cue
func markerSection(c Cue, marker string) section {
	switch {
	case c == CueSpinLoop && marker == MarkerFastPart:
		start := parameter.SpinLoopDuration / parameter.SpinLoopFastDivisor
		return section{offset: start, duration: parameter.SpinLoopDuration - start}
	case c == CueThunder && marker == MarkerThunderCut:
		return section{offset: parameter.ThunderCutOffset, duration: parameter.ThunderCutDuration}
	default:
		return section{duration: cueLength(c)}
	}
}

// createSpinSound is a low rumble that climbs to a faster pitch in its last two thirds
func createSpinSound(rate beep.SampleRate) beep.Streamer {
	slowPart := parameter.SpinLoopDuration / parameter.SpinLoopFastDivisor
	slow := NewOscillator(parameter.SpinLoopFreq, slowPart, WaveSaw, rate)
	fast := NewOscillator(parameter.SpinLoopFastFreq, parameter.SpinLoopDuration-slowPart, WaveSaw, rate)
	return NewVolume(beep.Seq(slow, fast), 0.4)
}

// createUfoHum is a detuned sine pair that beats slowly
func createUfoHum(rate beep.SampleRate) beep.Streamer {
	a := NewOscillator(parameter.UfoHumFreqA, parameter.UfoHumDuration, WaveSine, rate)
	b := NewOscillator(parameter.UfoHumFreqB, parameter.UfoHumDuration, WaveSine, rate)
	return NewVolume(beep.Mix(a, b), parameter.UfoHumVolume)
}

// createThunderSound is a noise crack followed by a low rumble tail
func createThunderSound(rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, parameter.ThunderDuration, WaveNoise, rate)
	crack := NewEnvelope(noise, parameter.ThunderDuration, parameter.ThunderAttack, parameter.ThunderDuration-parameter.ThunderCutDuration, rate)
	rumble := NewOscillator(55, parameter.ThunderDuration, WaveSine, rate)
	return beep.Mix(NewVolume(crack, 0.6), NewVolume(rumble, 0.3))
}

// createCoinSound generates a two-note chime
func createCoinSound(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(parameter.CoinSoundNote1Freq, parameter.CoinSoundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, parameter.CoinSoundNote1Duration, parameter.CoinSoundAttack, parameter.CoinSoundNote1Duration/2, rate)

	n2 := NewOscillator(parameter.CoinSoundNote2Freq, parameter.CoinSoundNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, parameter.CoinSoundNote2Duration, parameter.CoinSoundAttack, parameter.CoinSoundNote2Duration*3/4, rate)

	return NewVolume(beep.Seq(n1Shaped, n2Shaped), 0.5)
}

// BuildCue renders one pass of a cue section as a buffered, seekable streamer
func BuildCue(c Cue, marker string, rate beep.SampleRate) beep.StreamSeeker {
	var src beep.Streamer
	switch c {
	case CueSpinLoop:
		src = createSpinSound(rate)
	case CueUfoHum:
		src = createUfoHum(rate)
	case CueThunder:
		src = createThunderSound(rate)
	case CueCoins:
		src = createCoinSound(rate)
	default:
		return nil
	}

	format := beep.Format{SampleRate: rate, NumChannels: parameter.AudioChannels, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(src)

	sec := markerSection(c, marker)
	from := rate.N(sec.offset)
	to := from + rate.N(sec.duration)
	if to > buf.Len() {
		to = buf.Len()
	}
	if from > to {
		from = to
	}
	return buf.Streamer(from, to)
}
