package renderer

import (
	"fmt"
	"strings"

	"photoreel/internal/director"
)

// filterKeyframes is how many curve samples back one zoompan expression.
// Piecewise-linear segments between them track the eased curve closely
// enough at documentary speeds.
const filterKeyframes = 9

// BuildZoomPanFilter serializes the transform curve into an FFmpeg zoompan
// filter the external encoder can apply verbatim. Zoom and pan are sampled
// from the same curve, so the coupled zoom-pan constraint survives the
// round trip into filter syntax.
func BuildZoomPanFilter(preset director.MotionPreset, p TransformParams, duration float64, fps int) string {
	if fps <= 0 || duration <= 0 || p.FrameWidth <= 0 || p.FrameHeight <= 0 {
		return ""
	}

	frames := int(duration * float64(fps))
	if frames < 1 {
		frames = 1
	}

	times := make([]float64, filterKeyframes)
	scales := make([]float64, filterKeyframes)
	xs := make([]float64, filterKeyframes)
	ys := make([]float64, filterKeyframes)
	for i := 0; i < filterKeyframes; i++ {
		t := float64(i) / float64(filterKeyframes-1)
		s := SampleTransform(t, preset, p)
		times[i] = t
		scales[i] = s.Scale
		xs[i] = s.TranslateX
		ys[i] = s.TranslateY
	}

	zExpr := piecewiseExpr(times, scales, frames)
	xExpr := fmt.Sprintf("iw/2-(iw/zoom/2)+(%s)", piecewiseExpr(times, xs, frames))
	yExpr := fmt.Sprintf("ih/2-(ih/zoom/2)+(%s)", piecewiseExpr(times, ys, frames))

	return fmt.Sprintf("zoompan=z='%s':x='%s':y='%s':d=%d:s=%dx%d:fps=%d",
		zExpr, xExpr, yExpr, frames, p.FrameWidth, p.FrameHeight, fps)
}

// piecewiseExpr builds a nested if() expression over the output frame
// counter `on`, linearly interpolating between keyframe values.
func piecewiseExpr(times, vals []float64, frames int) string {
	if len(vals) == 0 {
		return "1.000000"
	}
	if len(vals) == 1 {
		return fmt.Sprintf("%.6f", vals[0])
	}

	var b strings.Builder
	segments := 0
	for i := 0; i < len(vals)-1; i++ {
		f0 := int(times[i] * float64(frames))
		f1 := int(times[i+1] * float64(frames))
		if f1 <= f0 {
			continue
		}
		fmt.Fprintf(&b, "if(lte(on,%d),%.6f+(on-%d)/%d*(%.6f-%.6f),",
			f1, vals[i], f0, f1-f0, vals[i+1], vals[i])
		segments++
	}
	fmt.Fprintf(&b, "%.6f", vals[len(vals)-1])
	b.WriteString(strings.Repeat(")", segments))
	return b.String()
}
