package framing

import (
	"fmt"
	"image"

	"photoreel/internal/analyzer"
)

// Reasons recorded on a Plan.
const (
	ReasonSaliency      = "saliency"
	ReasonAnchorHint    = "anchor_hint"
	ReasonLowConfidence = "low_confidence_center"
	ReasonFullFrame     = "full_frame"
)

// Options tune PlanFrame.
type Options struct {
	ConfidenceThreshold float64
	HeadroomBias        float64
	MaxScoreDimension   int
	Orientation         int     // EXIF orientation tag; 0 = unknown
	Anchor              *Anchor // externally supplied hint, overrides saliency
}

// Plan is the framing decision for one source image. Produced once, handed
// to the external cropper, never mutated afterward.
type Plan struct {
	RotationDeg int     `yaml:"rotation"`
	Crop        Rect    `yaml:"crop"`
	Confidence  float64 `yaml:"confidence"`
	Reason      string  `yaml:"reason"`
	Anchor      Anchor  `yaml:"anchor"`
	NeedsReview bool    `yaml:"needs_review"`
}

// PlanFrame composes saliency estimation and crop computation for one image.
// Low confidence is not an error: the plan recenters and flags NeedsReview.
// Only a missing image is rejected, and that failure is local to this image.
func PlanFrame(img image.Image, targetAspect float64, opts Options) (Plan, error) {
	if img == nil {
		return Plan{}, fmt.Errorf("nil image")
	}
	if targetAspect <= 0 {
		return Plan{}, fmt.Errorf("invalid target aspect %f", targetAspect)
	}

	rotation := orientationToRotation(opts.Orientation)
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if rotation == 90 || rotation == 270 {
		srcW, srcH = srcH, srcW
	}
	if srcW <= 0 || srcH <= 0 {
		return Plan{}, fmt.Errorf("empty image bounds %v", img.Bounds())
	}

	plan := Plan{RotationDeg: rotation}

	if opts.Anchor != nil {
		plan.Anchor = *opts.Anchor
		plan.Confidence = 1.0
		plan.Reason = ReasonAnchorHint
	} else {
		small := analyzer.Downsample(img, opts.MaxScoreDimension)
		res := analyzer.EstimateSaliency(small.Pix, small.Bounds().Dx(), small.Bounds().Dy())
		plan.Confidence = res.Confidence
		ax, ay := res.AnchorX, res.AnchorY
		if rotation != 0 {
			// Saliency runs on the stored pixels; map into rotated space.
			ax, ay = rotateAnchor(ax, ay, rotation)
		}
		if res.Confidence < opts.ConfidenceThreshold {
			// Not enough structure to trust the centroid.
			ax, ay = 0.5, 0.5
			plan.Reason = ReasonLowConfidence
			plan.NeedsReview = true
		} else {
			plan.Reason = ReasonSaliency
		}
		plan.Anchor = Anchor{X: ax, Y: ay}
	}

	plan.Crop = ComputeCropRect(srcW, srcH, targetAspect, plan.Anchor.X, plan.Anchor.Y, opts.HeadroomBias)
	if plan.Crop.X == 0 && plan.Crop.Y == 0 && plan.Crop.W == srcW && plan.Crop.H == srcH {
		if !plan.NeedsReview && opts.Anchor == nil {
			plan.Reason = ReasonFullFrame
		}
	}
	return plan, nil
}

// orientationToRotation maps the common EXIF orientation values onto the
// cropper's rotation channel. Mirrored orientations have no representation
// in the plan and fall back to 0.
func orientationToRotation(orientation int) int {
	switch orientation {
	case 3:
		return 180
	case 6:
		return 90
	case 8:
		return 270
	default:
		return 0
	}
}

// rotateAnchor maps a normalized anchor from stored-pixel space into the
// frame as displayed after rotation.
func rotateAnchor(x, y float64, rotation int) (float64, float64) {
	switch rotation {
	case 90:
		return 1 - y, x
	case 180:
		return 1 - x, 1 - y
	case 270:
		return y, 1 - x
	default:
		return x, y
	}
}
