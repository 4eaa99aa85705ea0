package constant

import "time"

// Win sequence
const (
	WinCrossFade = 1500 * time.Millisecond

	// WinFlyOffY is where mascots end up, above the visible canvas
	WinFlyOffY = -200.0
)

// Per-mascot fly-off duration and stagger, index aligned with MascotCount
var (
	WinFlyDurations = [MascotCount]time.Duration{1200 * time.Millisecond, 1300 * time.Millisecond, 1400 * time.Millisecond}
	WinFlyStaggers  = [MascotCount]time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}
)

// Lose sequence
const (
	StrikeCount    = 5
	StrikeInterval = 150 * time.Millisecond
	StrikeStagger  = 50 * time.Millisecond
	FlashDuration  = 100 * time.Millisecond
	LoseBuffer     = 100 * time.Millisecond
)

// Entrance
const (
	EntranceFlyDuration = 2000 * time.Millisecond
	EntranceNightFade   = 1000 * time.Millisecond
	EntranceShake       = 700 * time.Millisecond
	EntranceShakeAmount = 0.01

	HoverMinDuration = 2000 * time.Millisecond
	HoverMaxDuration = 3000 * time.Millisecond
	HoverAmplitude   = 10.0
)

// Banners
const (
	BannerFadeIn  = 400 * time.Millisecond
	BannerHold    = 1000 * time.Millisecond
	BannerFadeOut = 600 * time.Millisecond
)

const (
	WinBannerText   = "You Have Uncovered the Pharaoh's Treasure!"
	LoseBannerText  = "YOU LOSE"
	RestartHintText = "click or press r to restart"
)
