package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one planning job.
type Config struct {
	InputPath    string  `yaml:"input"`
	OutputPath   string  `yaml:"output"`
	TargetAspect float64 `yaml:"target_aspect"` // width/height
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FPS          int     `yaml:"fps"`
	Workers      int     `yaml:"workers"`
	Seed         int64   `yaml:"seed"`

	TotalDuration float64 `yaml:"total_duration"` // seconds; 0 means per-shot base applies
	ShotDuration  float64 `yaml:"shot_duration"`  // base seconds per shot when total is 0

	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	HeadroomBias        float64 `yaml:"headroom_bias"`
	MaxScoreDimension   int     `yaml:"max_score_dimension"`

	Motion DocumentaryMotionConfig `yaml:"motion"`
}

// DocumentaryMotionConfig is the numeric policy behind the documentary
// motion pack: restrained zoom ranges, small lateral drifts and the safety
// margin that keeps panning inside the overscan. One instance per job;
// treated as immutable once the job starts.
type DocumentaryMotionConfig struct {
	MinScale            float64 `yaml:"min_scale"`
	MaxScale            float64 `yaml:"max_scale"`
	PushInTargetScale   float64 `yaml:"push_in_target_scale"`
	ParallaxTargetScale float64 `yaml:"parallax_target_scale"`
	DriftMinPct         float64 `yaml:"drift_min_pct"` // fraction of frame width
	DriftMaxPct         float64 `yaml:"drift_max_pct"`
	DriftMaxScale       float64 `yaml:"drift_max_scale"` // end-scale ceiling for drifts
	TransitionDuration  float64 `yaml:"transition_duration"`
	HoldFraction        float64 `yaml:"hold_fraction"` // tail of the shot with no motion
	SafetyMarginPx      float64 `yaml:"safety_margin_px"`
	StartOffset         float64 `yaml:"start_offset"` // curve offset at the first frame
	InteriorDriftChance float64 `yaml:"interior_drift_chance"`
	EdgeDriftChance     float64 `yaml:"edge_drift_chance"`
	PullBackChance      float64 `yaml:"pull_back_chance"`
	ReverseChance       float64 `yaml:"reverse_chance"`
	ParallaxChance      float64 `yaml:"parallax_chance"`
}

func Default() *Config {
	return &Config{
		InputPath:           "input/photos",
		TargetAspect:        16.0 / 9.0,
		Width:               1920,
		Height:              1080,
		FPS:                 30,
		ShotDuration:        4.5,
		ConfidenceThreshold: 0.45,
		HeadroomBias:        0.08,
		MaxScoreDimension:   64,
		Motion:              DefaultMotion(),
	}
}

func DefaultMotion() DocumentaryMotionConfig {
	return DocumentaryMotionConfig{
		MinScale:            1.0,
		MaxScale:            1.08,
		PushInTargetScale:   1.025,
		ParallaxTargetScale: 1.015,
		DriftMinPct:         0.004,
		DriftMaxPct:         0.012,
		DriftMaxScale:       1.03,
		TransitionDuration:  0.75,
		HoldFraction:        0.1,
		SafetyMarginPx:      4,
		StartOffset:         0.12,
		InteriorDriftChance: 0.4,
		EdgeDriftChance:     0.2,
		PullBackChance:      0.6,
		ReverseChance:       0.7,
		ParallaxChance:      0.35,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if c.TargetAspect <= 0 {
		return fmt.Errorf("invalid target aspect %f", c.TargetAspect)
	}
	m := c.Motion
	if m.MinScale < 1.0 {
		return fmt.Errorf("min_scale %f below 1.0", m.MinScale)
	}
	if m.MaxScale < m.MinScale {
		return fmt.Errorf("max_scale %f below min_scale %f", m.MaxScale, m.MinScale)
	}
	if m.DriftMaxPct < m.DriftMinPct || m.DriftMinPct < 0 {
		return fmt.Errorf("bad drift range [%f, %f]", m.DriftMinPct, m.DriftMaxPct)
	}
	if m.SafetyMarginPx < 0 {
		return fmt.Errorf("negative safety margin %f", m.SafetyMarginPx)
	}
	if m.HoldFraction < 0 || m.HoldFraction >= 1 {
		return fmt.Errorf("hold_fraction %f out of range", m.HoldFraction)
	}
	return nil
}
