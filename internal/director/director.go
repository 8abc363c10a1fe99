package director

import (
	"photoreel/internal/config"
)

// PickPreset chooses the camera motion for one shot. It is a pure function
// of the metadata, the job seed and the motion policy: one deterministic
// pseudo-random draw stream is reseeded per decision, so an identical shot
// sequence always reproduces the identical preset sequence.
//
// The caller threads continuity by copying each return value into the next
// shot's PreviousPreset / PreviousPreviousPreset.
func PickPreset(meta ShotMetadata, seed int64, cfg config.DocumentaryMotionConfig) MotionPreset {
	if meta.TotalShots < 1 || meta.FrameWidth <= 0 || meta.FrameHeight <= 0 {
		return PresetStatic
	}

	rng := NewRNG(seed, meta.Position, meta.Index)

	// Establishing-shot convention: the first two shots always push in.
	if meta.Index <= 1 {
		return PresetSlowPushIn
	}

	prev := meta.PreviousPreset
	prev2 := meta.PreviousPreviousPreset

	// Closing shot: usually a pull-back, otherwise a light push-in — unless
	// a push-in would be the third in a row.
	if meta.Index == meta.TotalShots-1 {
		if prev == PresetSlowPushIn && prev2 == PresetSlowPushIn {
			return PresetSlowPullBack
		}
		if rng.Float64() < cfg.PullBackChance {
			return PresetSlowPullBack
		}
		return PresetSlowPushIn
	}

	// Two identical presets in a row force a family change.
	if prev != PresetNone && prev == prev2 {
		if prev.IsPushIn() {
			// Break a push-in streak with a drift. Only two presets of
			// history survive the streak, so no earlier drift direction is
			// recoverable; draw one.
			return randomDrift(rng)
		}
		return PresetSlowPushIn
	}

	// An active drift continues; a longer streak reverses or bails out.
	if prev.IsDrift() {
		streak := 1
		if prev2.IsDrift() && prev2.driftDirection() == prev.driftDirection() {
			streak++
		}
		if streak >= 2 {
			if rng.Float64() < cfg.ReverseChance {
				return reverseDrift(prev)
			}
			return PresetSlowPushIn
		}
		return prev
	}

	// Middle shots: drift more readily in the interior of the sequence.
	driftChance := cfg.EdgeDriftChance
	if meta.Position > 0.2 && meta.Position < 0.8 {
		driftChance = cfg.InteriorDriftChance
	}
	if rng.Float64() < driftChance {
		return randomDrift(rng)
	}

	// A known focal point makes the parallax variant worthwhile.
	if meta.Anchor != nil && rng.Float64() < cfg.ParallaxChance {
		return PresetParallaxPushIn
	}
	return PresetSlowPushIn
}

func randomDrift(rng *RNG) MotionPreset {
	if rng.Float64() < 0.5 {
		return PresetLateralDriftLeft
	}
	return PresetLateralDriftRight
}
