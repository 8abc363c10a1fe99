package director

import (
	"photoreel/internal/framing"
)

// ShotList is the render manifest handed to the external encoder: one entry
// per source photo with its framing decision, motion preset and a prebuilt
// filter expression.
type ShotList struct {
	Version string `yaml:"version"`
	JobID   string `yaml:"job_id"`
	Seed    int64  `yaml:"seed"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	FPS     int    `yaml:"fps"`
	Shots   []Shot `yaml:"shots"`
}

// Shot is one photo's plan within the sequence.
type Shot struct {
	Index       int            `yaml:"index"`
	Input       string         `yaml:"input"`
	Duration    float64        `yaml:"duration"`
	Preset      MotionPreset   `yaml:"preset"`
	RotationDeg int            `yaml:"rotation,omitempty"`
	Crop        framing.Rect   `yaml:"crop"`
	Anchor      framing.Anchor `yaml:"anchor"`
	Confidence  float64        `yaml:"confidence"`
	Reason      string         `yaml:"reason"`
	NeedsReview bool           `yaml:"needs_review,omitempty"`
	Filter      string         `yaml:"filter,omitempty"`
}
