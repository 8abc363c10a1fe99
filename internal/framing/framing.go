// Package framing computes crop rectangles around an image's salient region
// and assembles per-frame plans for the external cropper.
package framing

import (
	"math"
)

// AspectTolerance is the full-frame shortcut threshold: source and target
// aspects within this distance are treated as already matching, avoiding
// imperceptible micro-crops.
const AspectTolerance = 0.02

// Rect is a crop window in source pixels.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Anchor is a normalized focal point.
type Anchor struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ComputeCropRect returns a crop window of the target aspect centered on the
// anchor, shifted up by headroomBias (a fraction of crop height) and clamped
// fully inside the source bounds. Deterministic, never fails: an
// unsatisfiable center is resolved by clamping the origin.
func ComputeCropRect(srcW, srcH int, targetAspect, anchorX, anchorY, headroomBias float64) Rect {
	if srcW <= 0 || srcH <= 0 || targetAspect <= 0 {
		return Rect{X: 0, Y: 0, W: srcW, H: srcH}
	}

	srcAspect := float64(srcW) / float64(srcH)
	if math.Abs(srcAspect-targetAspect) <= AspectTolerance {
		return Rect{X: 0, Y: 0, W: srcW, H: srcH}
	}

	// Pin the proportionally smaller dimension, derive the other.
	var cropW, cropH float64
	if srcAspect > targetAspect {
		cropH = float64(srcH)
		cropW = cropH * targetAspect
	} else {
		cropW = float64(srcW)
		cropH = cropW / targetAspect
	}

	cx := anchorX * float64(srcW)
	cy := anchorY*float64(srcH) - headroomBias*cropH

	x := clamp(cx-cropW/2, 0, float64(srcW)-cropW)
	y := clamp(cy-cropH/2, 0, float64(srcH)-cropH)

	r := Rect{
		X: int(math.Round(x)),
		Y: int(math.Round(y)),
		W: int(math.Round(cropW)),
		H: int(math.Round(cropH)),
	}

	// Rounding both origin and size up can overshoot by a pixel.
	if r.X+r.W > srcW {
		r.X = srcW - r.W
	}
	if r.Y+r.H > srcH {
		r.Y = srcH - r.H
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
