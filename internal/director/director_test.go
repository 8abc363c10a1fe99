package director

import (
	"testing"

	"photoreel/internal/config"
	"photoreel/internal/framing"
)

func metaFor(index, total int, prev, prev2 MotionPreset) ShotMetadata {
	pos := 0.0
	if total > 1 {
		pos = float64(index) / float64(total-1)
	}
	return ShotMetadata{
		Position:               pos,
		Index:                  index,
		TotalShots:             total,
		FrameWidth:             1920,
		FrameHeight:            1080,
		PreviousPreset:         prev,
		PreviousPreviousPreset: prev2,
	}
}

// pickSequence runs the planner over a whole sequence, threading continuity
// the way a caller must.
func pickSequence(total int, seed int64, cfg config.DocumentaryMotionConfig) []MotionPreset {
	presets := make([]MotionPreset, total)
	prev, prev2 := PresetNone, PresetNone
	for i := 0; i < total; i++ {
		presets[i] = PickPreset(metaFor(i, total, prev, prev2), seed, cfg)
		prev2 = prev
		prev = presets[i]
	}
	return presets
}

func TestEstablishingShots(t *testing.T) {
	cfg := config.DefaultMotion()
	for seed := int64(0); seed < 20; seed++ {
		presets := pickSequence(5, seed, cfg)
		if presets[0] != PresetSlowPushIn || presets[1] != PresetSlowPushIn {
			t.Errorf("seed %d: shots 0-1 must push in, got %v %v", seed, presets[0], presets[1])
		}
	}
}

func TestClosingShot(t *testing.T) {
	cfg := config.DefaultMotion()
	sawPullBack := false
	for seed := int64(0); seed < 50; seed++ {
		presets := pickSequence(5, seed, cfg)
		last := presets[4]
		if last != PresetSlowPullBack && last != PresetSlowPushIn {
			t.Errorf("seed %d: closing shot must pull back or push in, got %v", seed, last)
		}
		if last == PresetSlowPullBack {
			sawPullBack = true
		}
	}
	if !sawPullBack {
		t.Error("No seed produced a closing pull-back in 50 runs")
	}
}

func TestNoTripleRepeat(t *testing.T) {
	cfg := config.DefaultMotion()
	for seed := int64(0); seed < 30; seed++ {
		presets := pickSequence(60, seed, cfg)
		for i := 2; i < len(presets); i++ {
			if presets[i] == presets[i-1] && presets[i] == presets[i-2] {
				t.Fatalf("seed %d: preset %v repeated 3x at shot %d", seed, presets[i], i)
			}
		}
	}
}

func TestDriftStreakBound(t *testing.T) {
	cfg := config.DefaultMotion()
	for seed := int64(0); seed < 30; seed++ {
		presets := pickSequence(60, seed, cfg)
		streak := 0
		dir := 0
		for i, p := range presets {
			d := 0
			switch p {
			case PresetLateralDriftLeft:
				d = -1
			case PresetLateralDriftRight:
				d = 1
			}
			if d != 0 && d == dir {
				streak++
			} else {
				streak = 0
				if d != 0 {
					streak = 1
				}
			}
			dir = d
			if streak > 3 {
				t.Fatalf("seed %d: drift direction persisted %d shots at index %d", seed, streak, i)
			}
		}
	}
}

func TestPickPresetDeterminism(t *testing.T) {
	cfg := config.DefaultMotion()
	a := pickSequence(25, 42, cfg)
	b := pickSequence(25, 42, cfg)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sequences diverged at shot %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPickPresetSeedsDiffer(t *testing.T) {
	cfg := config.DefaultMotion()
	a := pickSequence(40, 1, cfg)
	b := pickSequence(40, 2, cfg)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical 40-shot sequences")
	}
}

func TestTwoIdenticalForcesFamilyChange(t *testing.T) {
	cfg := config.DefaultMotion()

	// After two identical push-ins, a drift.
	m := metaFor(3, 10, PresetSlowPushIn, PresetSlowPushIn)
	for seed := int64(0); seed < 20; seed++ {
		if p := PickPreset(m, seed, cfg); !p.IsDrift() {
			t.Errorf("seed %d: two push-ins should force a drift, got %v", seed, p)
		}
	}

	// After two identical drifts, a push-in.
	m = metaFor(3, 10, PresetLateralDriftLeft, PresetLateralDriftLeft)
	for seed := int64(0); seed < 20; seed++ {
		if p := PickPreset(m, seed, cfg); p != PresetSlowPushIn {
			t.Errorf("seed %d: two drifts should force a push-in, got %v", seed, p)
		}
	}

	// After two pull-backs, a push-in.
	m = metaFor(3, 10, PresetSlowPullBack, PresetSlowPullBack)
	for seed := int64(0); seed < 20; seed++ {
		if p := PickPreset(m, seed, cfg); p != PresetSlowPushIn {
			t.Errorf("seed %d: two pull-backs should force a push-in, got %v", seed, p)
		}
	}
}

func TestSingleDriftContinues(t *testing.T) {
	cfg := config.DefaultMotion()
	m := metaFor(4, 10, PresetLateralDriftRight, PresetSlowPushIn)
	for seed := int64(0); seed < 20; seed++ {
		if p := PickPreset(m, seed, cfg); p != PresetLateralDriftRight {
			t.Errorf("seed %d: young drift should continue, got %v", seed, p)
		}
	}
}

func TestParallaxRequiresAnchor(t *testing.T) {
	cfg := config.DefaultMotion()
	for seed := int64(0); seed < 100; seed++ {
		m := metaFor(3, 10, PresetSlowPullBack, PresetSlowPushIn)
		if p := PickPreset(m, seed, cfg); p == PresetParallaxPushIn {
			t.Fatalf("seed %d: parallax chosen without an anchor hint", seed)
		}
	}

	saw := false
	for seed := int64(0); seed < 100; seed++ {
		m := metaFor(3, 10, PresetSlowPullBack, PresetSlowPushIn)
		m.Anchor = &framing.Anchor{X: 0.3, Y: 0.6}
		if PickPreset(m, seed, cfg) == PresetParallaxPushIn {
			saw = true
			break
		}
	}
	if !saw {
		t.Error("Anchor hint never produced a parallax push-in in 100 seeds")
	}
}

func TestPickPresetDegenerate(t *testing.T) {
	cfg := config.DefaultMotion()
	m := ShotMetadata{Index: 0, TotalShots: 0}
	if p := PickPreset(m, 1, cfg); p != PresetStatic {
		t.Errorf("Degenerate metadata should fall back to static, got %v", p)
	}
}

func TestPresetNames(t *testing.T) {
	for p := PresetNone; p <= PresetParallaxPushIn; p++ {
		parsed, err := ParsePreset(p.String())
		if err != nil {
			t.Fatalf("ParsePreset(%q): %v", p.String(), err)
		}
		if parsed != p {
			t.Errorf("Round trip changed %v to %v", p, parsed)
		}
	}
	if _, err := ParsePreset("spin"); err == nil {
		t.Error("Expected error for unknown preset name")
	}
}
