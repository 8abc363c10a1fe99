package director

import (
	"path/filepath"
	"testing"

	"photoreel/internal/framing"
)

func TestShotListWriteRead(t *testing.T) {
	list := &ShotList{
		Version: "1.0",
		JobID:   "test-job",
		Seed:    42,
		Width:   1920,
		Height:  1080,
		FPS:     30,
		Shots: []Shot{
			{
				Index:      0,
				Input:      "photo_a.jpg",
				Duration:   4.2,
				Preset:     PresetSlowPushIn,
				Crop:       framing.Rect{X: 0, Y: 375, W: 4000, H: 2250},
				Anchor:     framing.Anchor{X: 0.48, Y: 0.52},
				Confidence: 0.71,
				Reason:     "saliency",
			},
			{
				Index:       1,
				Input:       "photo_b.jpg",
				Duration:    3.8,
				Preset:      PresetLateralDriftLeft,
				NeedsReview: true,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "shotlist.yaml")
	if err := WriteShotList(list, path); err != nil {
		t.Fatalf("WriteShotList failed: %v", err)
	}

	read, err := ReadShotList(path)
	if err != nil {
		t.Fatalf("ReadShotList failed: %v", err)
	}

	if read.Seed != list.Seed || read.JobID != list.JobID {
		t.Errorf("Header mismatch: %+v", read)
	}
	if len(read.Shots) != 2 {
		t.Fatalf("Expected 2 shots, got %d", len(read.Shots))
	}
	if read.Shots[0].Preset != PresetSlowPushIn {
		t.Errorf("Preset lost: %v", read.Shots[0].Preset)
	}
	if read.Shots[1].Preset != PresetLateralDriftLeft {
		t.Errorf("Preset lost: %v", read.Shots[1].Preset)
	}
	if read.Shots[0].Crop != list.Shots[0].Crop {
		t.Errorf("Crop mismatch: %+v vs %+v", read.Shots[0].Crop, list.Shots[0].Crop)
	}
}
