package constant

import "time"

// Reel geometry
// Strip slots sit on a fixed grid; row r rests at r*SymbolHeight - SymbolHeight
const (
	ReelCount      = 3
	StripLength    = 5
	MinStripLength = 3

	SymbolHeight = 128.0

	// WrapMin is the top of the renderable band; the band spans StripLength*SymbolHeight
	WrapMin = -SymbolHeight

	// MiddleSlotY is the payline row read on settle
	MiddleSlotY = SymbolHeight
)

// Spin parameters
const (
	SpinCountMin   = 2
	SpinCountMax   = 10
	OffsetSlotsMax = 4

	SpinBaseDuration = 2000 * time.Millisecond
	SpinDurationStep = 700 * time.Millisecond
)
