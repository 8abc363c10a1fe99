// Package engine drives one planning job end to end: parallel frame
// analysis, sequential preset continuity, deterministic shot durations, and
// the render manifest handed to the external encoder.
package engine

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"photoreel/internal/config"
	"photoreel/internal/director"
	"photoreel/internal/framing"
	"photoreel/internal/renderer"
	"photoreel/internal/source"
	"photoreel/internal/system"
)

// Job plans one photo sequence. The id is informational; all deterministic
// behavior keys off Config.Seed.
type Job struct {
	ID     string
	Config *config.Config
	Source source.Source
}

func NewJob(cfg *config.Config, src source.Source) *Job {
	return &Job{
		ID:     uuid.NewString(),
		Config: cfg,
		Source: src,
	}
}

// Run produces the shot list. Per-image failures degrade that shot to a
// reviewed full-frame fallback; only an empty source or a write failure is
// fatal to the job.
func (j *Job) Run(ctx context.Context) (*director.ShotList, error) {
	start := time.Now()

	n := j.Source.Count()
	if n == 0 {
		return nil, fmt.Errorf("source contains no photos")
	}
	cfg := j.Config

	fmt.Printf("[*] Job %s: %d photos, %dx%d @ %d fps, seed %d\n",
		j.ID, n, cfg.Width, cfg.Height, cfg.FPS, cfg.Seed)

	// Frame planning has no ordering dependency; fan it out.
	plans := make([]framing.Plan, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(system.Workers(cfg.Workers))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plans[i] = j.planOne(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	durations := j.shotDurations(n)

	// Preset continuity is the one sequential dependency: thread the
	// previous two presets through the sequence in order.
	list := &director.ShotList{
		Version: "1.0",
		JobID:   j.ID,
		Seed:    cfg.Seed,
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Shots:   make([]director.Shot, n),
	}

	prev, prev2 := director.PresetNone, director.PresetNone
	reviewCount := 0
	for i := 0; i < n; i++ {
		plan := plans[i]
		pos := 0.0
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}

		// A reviewed shot has no trusted focal point to lean on.
		var anchor *framing.Anchor
		if !plan.NeedsReview {
			a := plan.Anchor
			anchor = &a
		}
		meta := director.ShotMetadata{
			Position:               pos,
			Index:                  i,
			TotalShots:             n,
			FrameWidth:             cfg.Width,
			FrameHeight:            cfg.Height,
			PreviousPreset:         prev,
			PreviousPreviousPreset: prev2,
			Anchor:                 anchor,
		}
		preset := director.PickPreset(meta, cfg.Seed, cfg.Motion)
		prev2 = prev
		prev = preset

		params := renderer.TransformParams{
			FrameWidth:  cfg.Width,
			FrameHeight: cfg.Height,
			Seed:        int64(director.ShotSeed(cfg.Seed, pos, i)),
			Config:      cfg.Motion,
			Anchor:      anchor,
		}

		if plan.NeedsReview {
			reviewCount++
		}

		list.Shots[i] = director.Shot{
			Index:       i,
			Input:       filepath.Base(j.Source.Path(i)),
			Duration:    durations[i],
			Preset:      preset,
			RotationDeg: plan.RotationDeg,
			Crop:        plan.Crop,
			Anchor:      plan.Anchor,
			Confidence:  plan.Confidence,
			Reason:      plan.Reason,
			NeedsReview: plan.NeedsReview,
			Filter:      renderer.BuildZoomPanFilter(preset, params, durations[i], cfg.FPS),
		}
	}

	if cfg.OutputPath != "" {
		if err := director.WriteShotList(list, cfg.OutputPath); err != nil {
			return nil, fmt.Errorf("write shot list: %w", err)
		}
		fmt.Printf("[+] Shot list written: %s\n", cfg.OutputPath)
	}

	fmt.Printf("[*] Planned %d shots in %.2fs (%d flagged for review)\n",
		n, time.Since(start).Seconds(), reviewCount)
	return list, nil
}

// planOne analyzes a single photo. Decode or plan failures are local: the
// shot degrades to a reviewed full-frame plan instead of failing the batch.
func (j *Job) planOne(index int) framing.Plan {
	cfg := j.Config

	img, err := j.Source.Load(index)
	if err == nil {
		plan, perr := framing.PlanFrame(img, cfg.TargetAspect, framing.Options{
			ConfidenceThreshold: cfg.ConfidenceThreshold,
			HeadroomBias:        cfg.HeadroomBias,
			MaxScoreDimension:   cfg.MaxScoreDimension,
		})
		if perr == nil {
			return plan
		}
		err = perr
	}

	log.Printf("[!] Photo %d (%s): %v, using full-frame fallback", index, j.Source.Path(index), err)
	return framing.Plan{
		Crop:        framing.Rect{X: 0, Y: 0, W: cfg.Width, H: cfg.Height},
		Confidence:  0,
		Reason:      framing.ReasonLowConfidence,
		Anchor:      framing.Anchor{X: 0.5, Y: 0.5},
		NeedsReview: true,
	}
}

// shotDurations distributes the job duration across shots with a ±15% walk
// so the pacing breathes, then rescales to the exact total. Transitions eat
// into neighboring shots, so each transition adds its duration back once.
// Seeded from the job seed: the same job always paces the same way.
func (j *Job) shotDurations(n int) []float64 {
	cfg := j.Config

	base := cfg.ShotDuration
	if base <= 0 {
		base = 4.5
	}
	total := cfg.TotalDuration
	fade := cfg.Motion.TransitionDuration
	if total <= 0 {
		total = base * float64(n)
	}
	numFades := float64(n - 1)
	if numFades < 0 {
		numFades = 0
	}
	totalClips := total + numFades*fade
	baseDur := totalClips / float64(n)

	rng := director.NewRNG(cfg.Seed, 0, -1)
	durations := make([]float64, n)
	durations[0] = baseDur * (1 + rng.Range(-0.15, 0.15))
	for i := 1; i < n; i++ {
		durations[i] = durations[i-1] * (1 + rng.Range(-0.15, 0.15))
		if durations[i] < fade*1.1 {
			durations[i] = fade * 1.1
		}
	}

	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	scale := totalClips / sum
	for i := range durations {
		durations[i] *= scale
	}
	return durations
}
