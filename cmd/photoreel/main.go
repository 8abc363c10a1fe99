package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"photoreel/internal/config"
	"photoreel/internal/engine"
	"photoreel/internal/source"
	"photoreel/internal/system"
)

func main() {
	system.InitResourceLimits()

	configPtr := flag.String("config", "", "Path to a YAML job config (flags override it)")
	inputPtr := flag.String("input", "", "Photo file or directory (default: freshest dir under input/photos/)")
	outputPtr := flag.String("output", "", "Shot list path (default: output/shotlist_<timestamp>.yaml)")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	widthPtr := flag.Int("width", 0, "Frame width")
	heightPtr := flag.Int("height", 0, "Frame height")
	fpsPtr := flag.Int("fps", 0, "Frames per second")
	durationPtr := flag.Float64("duration", 0, "Total video duration in seconds (0: derived per shot)")
	shotDurPtr := flag.Float64("shot-duration", 0, "Base seconds per shot when -duration is 0")
	seedPtr := flag.Int64("seed", 0, "Job seed (0: derived from current time)")
	workersPtr := flag.Int("workers", 0, "Planning workers (0: auto)")
	headroomPtr := flag.Float64("headroom", -1, "Headroom bias as a fraction of crop height")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[!] %v", err)
		}
		cfg = loaded
	}

	if *inputPtr != "" {
		cfg.InputPath = *inputPtr
	}
	if *outputPtr != "" {
		cfg.OutputPath = *outputPtr
	}
	if *widthPtr > 0 {
		cfg.Width = *widthPtr
	}
	if *heightPtr > 0 {
		cfg.Height = *heightPtr
	}
	if *fpsPtr > 0 {
		cfg.FPS = *fpsPtr
	}
	if *durationPtr > 0 {
		cfg.TotalDuration = *durationPtr
	}
	if *shotDurPtr > 0 {
		cfg.ShotDuration = *shotDurPtr
	}
	if *seedPtr != 0 {
		cfg.Seed = *seedPtr
	}
	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	}
	if *headroomPtr >= 0 {
		cfg.HeadroomBias = *headroomPtr
	}

	switch *presetPtr {
	case "16:9":
		cfg.Width, cfg.Height = 1920, 1080
	case "9:16":
		cfg.Width, cfg.Height = 1080, 1920
	case "4:5":
		cfg.Width, cfg.Height = 1080, 1350
	case "":
	default:
		log.Fatalf("[!] Unknown format preset %q", *presetPtr)
	}
	// Frame geometry set on the command line implies the crop aspect.
	if *presetPtr != "" || *widthPtr > 0 || *heightPtr > 0 || cfg.TargetAspect <= 0 {
		cfg.TargetAspect = float64(cfg.Width) / float64(cfg.Height)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		fmt.Printf("[*] Seed not set, using %d (pass -seed to reproduce)\n", cfg.Seed)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[!] %v", err)
	}

	inputPath := cfg.InputPath
	if fi, err := os.Stat(inputPath); err == nil && fi.IsDir() {
		if found, err := system.FindLatestImageDir(inputPath); err == nil {
			inputPath = found
		}
	}

	src, err := source.NewImageSource(inputPath)
	if err != nil {
		log.Fatalf("[!] %v", err)
	}
	defer src.Close()

	if cfg.OutputPath == "" {
		os.MkdirAll("output", 0755)
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputPath = filepath.Join("output", fmt.Sprintf("shotlist_%s.yaml", timestamp))
	}

	job := engine.NewJob(cfg, src)
	list, err := job.Run(context.Background())
	if err != nil {
		log.Fatalf("[!] %v", err)
	}

	review := 0
	for _, s := range list.Shots {
		if s.NeedsReview {
			review++
		}
	}
	if review > 0 {
		fmt.Printf("[!] %d of %d shots flagged for review\n", review, len(list.Shots))
	}
	fmt.Printf("[+++] Done: %s\n", cfg.OutputPath)
}
