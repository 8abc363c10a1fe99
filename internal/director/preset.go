// Package director decides how the virtual camera behaves across a shot
// sequence: it picks a motion preset per shot from the documentary pack,
// keeping continuity restrained rather than flashy.
package director

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"photoreel/internal/framing"
)

// MotionPreset names one camera-motion behavior from the documentary pack.
type MotionPreset int

const (
	PresetNone MotionPreset = iota // zero value: no history
	PresetStatic
	PresetSlowPushIn
	PresetSlowPullBack
	PresetLateralDriftLeft
	PresetLateralDriftRight
	PresetParallaxPushIn
)

var presetNames = map[MotionPreset]string{
	PresetNone:              "none",
	PresetStatic:            "static",
	PresetSlowPushIn:        "slow_push_in",
	PresetSlowPullBack:      "slow_pull_back",
	PresetLateralDriftLeft:  "lateral_drift_left",
	PresetLateralDriftRight: "lateral_drift_right",
	PresetParallaxPushIn:    "parallax_push_in",
}

func (p MotionPreset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// ParsePreset maps a shot list name back to its preset.
func ParsePreset(name string) (MotionPreset, error) {
	for p, n := range presetNames {
		if n == name {
			return p, nil
		}
	}
	return PresetNone, fmt.Errorf("unknown motion preset %q", name)
}

func (p MotionPreset) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *MotionPreset) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParsePreset(name)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// IsDrift reports whether the preset is a lateral drift.
func (p MotionPreset) IsDrift() bool {
	return p == PresetLateralDriftLeft || p == PresetLateralDriftRight
}

// IsPushIn reports whether the preset belongs to the push-in family.
func (p MotionPreset) IsPushIn() bool {
	return p == PresetSlowPushIn || p == PresetParallaxPushIn
}

// driftDirection is -1 for left, +1 for right, 0 otherwise.
func (p MotionPreset) driftDirection() int {
	switch p {
	case PresetLateralDriftLeft:
		return -1
	case PresetLateralDriftRight:
		return 1
	default:
		return 0
	}
}

func reverseDrift(p MotionPreset) MotionPreset {
	if p == PresetLateralDriftLeft {
		return PresetLateralDriftRight
	}
	return PresetLateralDriftLeft
}

// ShotMetadata is the per-shot input to preset selection. The caller builds
// it from the chosen photo order and threads the previous two presets
// forward; the planner itself keeps no state.
type ShotMetadata struct {
	Position    float64 // normalized position in the sequence, [0,1]
	Index       int
	TotalShots  int
	FrameWidth  int
	FrameHeight int

	PreviousPreset         MotionPreset
	PreviousPreviousPreset MotionPreset

	Anchor *framing.Anchor // optional focal hint for this shot
}
