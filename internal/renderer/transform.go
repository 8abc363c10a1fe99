// Package renderer turns a chosen motion preset into per-frame camera
// transforms and serializes them for the external encoder. Everything here
// is pure: identical inputs yield bit-identical output.
package renderer

import (
	"math"

	"photoreel/internal/config"
	"photoreel/internal/director"
	"photoreel/internal/framing"
)

const defaultStartOffset = 0.12

// TransformParams carries the per-shot inputs of the curve generator.
type TransformParams struct {
	FrameWidth  int
	FrameHeight int
	Seed        int64
	Config      config.DocumentaryMotionConfig
	Anchor      *framing.Anchor
}

// Sample is the camera transform at one normalized time.
type Sample struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
	RotateDeg  float64
}

// SampleTransform evaluates the motion curve for a preset at t in [0,1].
// Translation is clamped against the overscan available at the current
// scale — not the final one — so no intermediate frame reveals the
// unscaled edge. Rotation is always 0 in current policy.
func SampleTransform(t float64, preset director.MotionPreset, p TransformParams) Sample {
	cfg := normalizedMotion(p.Config)
	w := float64(p.FrameWidth)
	h := float64(p.FrameHeight)
	if w <= 0 || h <= 0 {
		return Sample{Scale: 1}
	}

	e := easedProgress(clamp01(t), cfg.StartOffset, cfg.HoldFraction)

	s := Sample{Scale: 1}
	switch preset {
	case director.PresetSlowPushIn:
		s.Scale = cfg.MinScale + (cfg.PushInTargetScale-cfg.MinScale)*e

	case director.PresetParallaxPushIn:
		// Lighter single-layer approximation; true multi-layer parallax is
		// the renderer's business, not ours.
		s.Scale = cfg.MinScale + (cfg.ParallaxTargetScale-cfg.MinScale)*e
		if p.Anchor != nil {
			// Lean the frame toward the focal point inside the overscan.
			s.TranslateX = (0.5 - p.Anchor.X) * overscanBound(s.Scale, w, cfg.SafetyMarginPx)
			s.TranslateY = (0.5 - p.Anchor.Y) * overscanBound(s.Scale, h, cfg.SafetyMarginPx)
		}

	case director.PresetSlowPullBack:
		s.Scale = cfg.MaxScale + (cfg.MinScale-cfg.MaxScale)*e

	case director.PresetLateralDriftLeft, director.PresetLateralDriftRight:
		endScale, driftPx := driftPlan(p.Seed, w, cfg)
		s.Scale = 1 + (endScale-1)*e
		tx := driftPx * e
		if preset == director.PresetLateralDriftLeft {
			tx = -tx
		}
		s.TranslateX = tx
	}

	// Final pass: preset-appropriate scale bound, then the overscan bound
	// recomputed at the scale we actually have at this t.
	s.Scale = clampScale(s.Scale, preset, cfg)
	bx := overscanBound(s.Scale, w, cfg.SafetyMarginPx)
	by := overscanBound(s.Scale, h, cfg.SafetyMarginPx)
	s.TranslateX = clampF(s.TranslateX, -bx, bx)
	s.TranslateY = clampF(s.TranslateY, -by, by)
	return s
}

// SolveDrift returns the minimum end scale that lets a pan of desiredPx stay
// clear of the frame edge, and the pan distance actually granted. When the
// ceiling caps the scale, distance yields; the ceiling never does.
//
// This is the single constraint solver shared by end-scale selection and the
// final safety clamp, so the intended and enforced bounds cannot drift apart.
func SolveDrift(desiredPx, frameW, safetyPx, ceiling float64) (endScale, driftPx float64) {
	if frameW <= 0 || desiredPx < 0 {
		return 1, 0
	}
	endScale = 1 + 2*(desiredPx+safetyPx)/frameW
	driftPx = desiredPx
	if ceiling > 1 && endScale > ceiling {
		endScale = ceiling
		driftPx = (endScale-1)*frameW/2 - safetyPx
		if driftPx < 0 {
			driftPx = 0
		}
	}
	return endScale, driftPx
}

// driftPlan draws the desired drift distance for this shot and solves the
// coupled zoom-pan constraint. The draw depends only on the seed, never on t.
func driftPlan(seed int64, frameW float64, cfg config.DocumentaryMotionConfig) (endScale, driftPx float64) {
	rng := director.NewRNG(seed, 0, 0)
	frac := rng.Range(cfg.DriftMinPct, cfg.DriftMaxPct)
	return SolveDrift(frac*frameW, frameW, cfg.SafetyMarginPx, cfg.DriftMaxScale)
}

// easedProgress maps shot time onto a sine ease-in-out curve sampled from a
// fixed offset, so motion is already underway on the first rendered frame
// instead of pausing before it starts. The hold fraction finishes the move
// slightly before the shot ends.
func easedProgress(t, offset, hold float64) float64 {
	active := 1 - hold
	if active <= 0 {
		active = 1
	}
	u := t / active
	if u > 1 {
		u = 1
	}
	return sineEase(offset + (1-offset)*u)
}

func sineEase(x float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*x)
}

// overscanBound is the translation budget once scale exposes extra image:
// ((scale-1)*dim)/2 minus the safety margin, floored at zero.
func overscanBound(scale, dim, safetyPx float64) float64 {
	b := (scale-1)*dim/2 - safetyPx
	if b < 0 {
		return 0
	}
	return b
}

func clampScale(scale float64, preset director.MotionPreset, cfg config.DocumentaryMotionConfig) float64 {
	hi := cfg.MaxScale
	switch preset {
	case director.PresetStatic, director.PresetNone:
		return 1
	case director.PresetSlowPushIn:
		hi = cfg.PushInTargetScale
	case director.PresetParallaxPushIn:
		hi = cfg.ParallaxTargetScale
	case director.PresetLateralDriftLeft, director.PresetLateralDriftRight:
		hi = cfg.DriftMaxScale
	}
	if hi < 1 {
		hi = 1
	}
	return clampF(scale, 1, hi)
}

// normalizedMotion backfills zero-valued policy fields so a partially
// specified config still behaves; a degenerate config is not an error.
func normalizedMotion(cfg config.DocumentaryMotionConfig) config.DocumentaryMotionConfig {
	def := config.DefaultMotion()
	if cfg.MinScale < 1 {
		cfg.MinScale = def.MinScale
	}
	if cfg.MaxScale < cfg.MinScale {
		cfg.MaxScale = def.MaxScale
	}
	if cfg.PushInTargetScale < 1 {
		cfg.PushInTargetScale = def.PushInTargetScale
	}
	if cfg.ParallaxTargetScale < 1 {
		cfg.ParallaxTargetScale = def.ParallaxTargetScale
	}
	if cfg.DriftMaxScale < 1 {
		cfg.DriftMaxScale = def.DriftMaxScale
	}
	if cfg.StartOffset <= 0 || cfg.StartOffset >= 1 {
		cfg.StartOffset = defaultStartOffset
	}
	if cfg.HoldFraction < 0 || cfg.HoldFraction >= 1 {
		cfg.HoldFraction = def.HoldFraction
	}
	return cfg
}

func clamp01(v float64) float64 {
	return clampF(v, 0, 1)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
