package render

import "github.com/gdamore/tcell/v2"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Scene palette
var (
	RgbBlack    = RGB{0, 0, 0}
	RgbDaySky   = RGB{222, 184, 120} // desert noon
	RgbNightSky = RGB{18, 20, 48}

	RgbReelFace   = RGB{40, 30, 20}
	RgbReelFrame  = RGB{205, 160, 60}
	RgbPayline    = RGB{255, 80, 80}
	RgbMascot     = RGB{120, 255, 140}
	RgbBeam       = RGB{255, 255, 140}
	RgbBannerText = RGB{255, 255, 255}
	RgbEndText    = RGB{255, 70, 70}
	RgbHintText   = RGB{200, 200, 200}
	RgbStatusBar  = RGB{255, 255, 255}
	RgbStatusBg   = RGB{30, 30, 30}
)

// symbolColors tints each reel symbol
var symbolColors = map[string]RGB{
	"ufo":     {120, 255, 140},
	"ankh":    {255, 215, 0},
	"horus":   {100, 170, 255},
	"scarab":  {60, 200, 180},
	"pharaoh": {255, 140, 60},
}
