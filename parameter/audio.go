package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines latency and mixer tick rate
	AudioBufferDuration = 50 * time.Millisecond

	// AudioMasterVolume is applied to every cue before mixing
	AudioMasterVolume = 0.35
)

// Spin loop: low rumble with a faster pitched section after the fastPart marker
const (
	SpinLoopDuration    = 600 * time.Millisecond
	SpinLoopFreq        = 110.0
	SpinLoopFastFreq    = 165.0
	SpinLoopFastDivisor = 3 // fastPart marker starts at duration/3
)

// UFO hum: continuous detuned pair, looped
const (
	UfoHumDuration = 1200 * time.Millisecond
	UfoHumFreqA    = 220.0
	UfoHumFreqB    = 223.5
	UfoHumVolume   = 0.25
)

// Thunder: filtered noise burst, thunderCut marker skips the rumble tail
const (
	ThunderDuration    = 900 * time.Millisecond
	ThunderCutOffset   = 0 * time.Millisecond
	ThunderCutDuration = 350 * time.Millisecond
	ThunderAttack      = 5 * time.Millisecond
)

// Coin Sound
const (
	CoinSoundNote1Duration = 80 * time.Millisecond
	CoinSoundNote2Duration = 280 * time.Millisecond
	CoinSoundNote1Freq     = 988.0  // B5
	CoinSoundNote2Freq     = 1319.0 // E6
	CoinSoundAttack        = 5 * time.Millisecond
)
