package analyzer

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultScoreDimension bounds the long edge of the buffer handed to
// EstimateSaliency. 64 px keeps the Sobel pass cheap while leaving enough
// structure to place an anchor.
const DefaultScoreDimension = 64

const (
	confidenceFloor = 0.3
	// magnitudeReference maps mean gradient magnitude onto [0.3, 1.0].
	// Typical photographs land in the 0.5-0.9 band with this value.
	magnitudeReference = 64.0
)

// Result is the estimated visual focal point of an image.
type Result struct {
	AnchorX     float64 // normalized [0,1]
	AnchorY     float64
	Confidence  float64 // [0.3, 1.0]
	TotalWeight float64 // summed gradient magnitude
}

// EstimateSaliency computes an edge-weighted focal point from a downsampled
// RGBA buffer. The anchor is the gradient-magnitude-weighted centroid of the
// interior pixels; a uniform image degrades to the frame center at floor
// confidence. Pure function.
func EstimateSaliency(pix []uint8, width, height int) Result {
	center := Result{AnchorX: 0.5, AnchorY: 0.5, Confidence: confidenceFloor}
	if width < 3 || height < 3 || len(pix) < width*height*4 {
		return center
	}

	luma := make([]float64, width*height)
	for i := 0; i < width*height; i++ {
		r := float64(pix[i*4])
		g := float64(pix[i*4+1])
		b := float64(pix[i*4+2])
		luma[i] = 0.299*r + 0.587*g + 0.114*b
	}

	// 3x3 Sobel on interior pixels, gradient magnitude as weight.
	gx := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	gy := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	n := (width - 2) * (height - 2)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	ws := make([]float64, 0, n)

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := luma[(y+ky)*width+(x+kx)]
					sumX += v * gx[ky+1][kx+1]
					sumY += v * gy[ky+1][kx+1]
				}
			}
			xs = append(xs, float64(x))
			ys = append(ys, float64(y))
			ws = append(ws, math.Sqrt(sumX*sumX+sumY*sumY))
		}
	}

	total := floats.Sum(ws)
	if total == 0 {
		return center
	}

	meanMag := total / float64(len(ws))
	conf := confidenceFloor + (1.0-confidenceFloor)*math.Min(1.0, meanMag/magnitudeReference)

	return Result{
		AnchorX:     stat.Mean(xs, ws) / float64(width-1),
		AnchorY:     stat.Mean(ys, ws) / float64(height-1),
		Confidence:  conf,
		TotalWeight: total,
	}
}

// Downsample converts img to RGBA with its long edge bounded to maxDim.
func Downsample(img image.Image, maxDim int) *image.RGBA {
	if maxDim <= 0 {
		maxDim = DefaultScoreDimension
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	dw, dh := w, h
	if w > maxDim || h > maxDim {
		if w >= h {
			dw = maxDim
			dh = h * maxDim / w
		} else {
			dh = maxDim
			dw = w * maxDim / h
		}
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
