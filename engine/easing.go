package engine

import "math"

// EaseFunc maps linear progress in [0,1] to eased progress
type EaseFunc func(t float64) float64

func Linear(t float64) float64 { return t }

func QuadIn(t float64) float64 { return t * t }

func QuadOut(t float64) float64 { return t * (2 - t) }

func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func CubicIn(t float64) float64 { return t * t * t }

// CubicOut decelerates to a stop; reels use it for the settle
func CubicOut(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseByName resolves config-facing names, falling back to Linear
func EaseByName(name string) EaseFunc {
	switch name {
	case "quad.in":
		return QuadIn
	case "quad.out":
		return QuadOut
	case "quad.inout":
		return QuadInOut
	case "cubic.in":
		return CubicIn
	case "cubic.out":
		return CubicOut
	case "sine.inout":
		return SineInOut
	default:
		return Linear
	}
}
