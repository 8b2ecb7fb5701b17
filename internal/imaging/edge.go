package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/vision-labs/internal/detection"
	"github.com/ironsheep/vision-labs/internal/morphology"
)

// ErrEmptyImage is returned by detectors given an image with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// CannyOptions configures Canny edge detection.
type CannyOptions struct {
	// Sigma is the standard deviation of the Gaussian smoothing, in pixels.
	// Zero disables smoothing.
	Sigma float64 `json:"sigma"`

	// Low and High are hysteresis thresholds on the Sobel gradient
	// magnitude of the [0,1] grayscale image.
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// DefaultCannyOptions returns the settings used by the blob pipeline.
func DefaultCannyOptions() CannyOptions {
	return CannyOptions{Sigma: 2.9, Low: 0.1, High: 0.2}
}

// EdgeDetector produces a binary edge mask from an image.
type EdgeDetector interface {
	Name() string
	Detect(img image.Image, opts CannyOptions) (*morphology.Mask, error)
}

// Edge backend names accepted by NewEdgeDetector.
const (
	BackendNative = "native"
	BackendGoCV   = "gocv"
)

// NewEdgeDetector returns the detector for a backend name. An empty name
// selects the native backend.
func NewEdgeDetector(backend string) (EdgeDetector, error) {
	switch backend {
	case "", BackendNative:
		return NativeCanny{}, nil
	case BackendGoCV:
		return GoCVCanny{}, nil
	default:
		return nil, fmt.Errorf("unknown edge backend: %s", backend)
	}
}

// NativeCanny is the pure-Go Canny implementation.
type NativeCanny struct{}

// Name implements EdgeDetector.
func (NativeCanny) Name() string { return BackendNative }

// Detect implements EdgeDetector.
func (NativeCanny) Detect(img image.Image, opts CannyOptions) (*morphology.Mask, error) {
	return Canny(img, opts)
}

// Canny performs Canny edge detection on an image.
//
// # Algorithm
//
//  1. Grayscale conversion with the BT.709 luminance weights.
//
//  2. Gaussian blur with standard deviation opts.Sigma.
//
//  3. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  4. Non-maximum suppression: Thin edges to 1-pixel width by keeping only
//     local maxima in the gradient direction. Border pixels are never edges.
//
//  5. Hysteresis thresholding:
//     - Pixels with magnitude >= High are strong edges (always kept)
//     - Pixels between Low and High are weak edges, kept only when their
//     8-connected group of weak and strong pixels contains a strong edge
//     - Pixels below Low are discarded
func Canny(img image.Image, opts CannyOptions) (*morphology.Mask, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	var smoothed image.Image = GrayImage(img)
	if opts.Sigma > 0 {
		smoothed = imaging.Blur(smoothed, opts.Sigma)
	}
	blurred := PlaneFromGray(smoothed)

	magnitude, direction := sobel(blurred)
	suppressed := nonMaxSuppress(magnitude, direction, width, height)

	// Candidates are every pixel surviving the low threshold; a candidate
	// group is kept if it touches at least one strong pixel.
	candidates := morphology.NewMask(width, height)
	for i, v := range suppressed {
		candidates.Pix[i] = v > 0 && v >= opts.Low
	}

	labels := detection.Label(candidates, detection.Eight)
	keep := make([]bool, labels.Count+1)
	for i, v := range suppressed {
		if candidates.Pix[i] && v >= opts.High {
			keep[labels.Pix[i]] = true
		}
	}

	edges := morphology.NewMask(width, height)
	for i, id := range labels.Pix {
		edges.Pix[i] = id != 0 && keep[id]
	}
	return edges, nil
}

// sobel returns the gradient magnitude and direction of p.
// Border pixels use clamped (replicated) edge values.
func sobel(p *Plane) (magnitude, direction []float64) {
	width, height := p.Width, p.Height
	magnitude = make([]float64, width*height)
	direction = make([]float64, width*height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := p.At(clamp(x+kx, 0, width-1), clamp(y+ky, 0, height-1))
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

func nonMaxSuppress(magnitude, direction []float64, width, height int) []float64 {
	suppressed := make([]float64, width*height)
	at := func(x, y int) float64 { return magnitude[y*width+x] }

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y*width+x]
			mag := at(x, y)
			if mag == 0 {
				continue
			}

			// Determine neighbors to compare based on gradient direction
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = at(x-1, y)
				n2 = at(x+1, y)
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = at(x-1, y-1)
				n2 = at(x+1, y+1)
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = at(x, y-1)
				n2 = at(x, y+1)
			} else {
				n1 = at(x+1, y-1)
				n2 = at(x-1, y+1)
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y*width+x] = mag
			}
		}
	}
	return suppressed
}

// EdgeDetectResult contains an edge mask encoded as base64 PNG.
//
// The result is a grayscale image where white pixels (255) represent detected
// edges and black pixels (0) represent non-edges.
type EdgeDetectResult struct {
	// Width of the output image in pixels (same as input).
	Width int `json:"width"`

	// Height of the output image in pixels (same as input).
	Height int `json:"height"`

	// EdgePixels is the number of edge pixels.
	EdgePixels int `json:"edge_pixels"`

	// ImageBase64 is the edge image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png" for edge detection results.
	MimeType string `json:"mime_type"`
}

// EncodeEdges wraps an edge mask as a base64 PNG result.
func EncodeEdges(edges *morphology.Mask) (*EdgeDetectResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, edges.ToGray()); err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}

	return &EdgeDetectResult{
		Width:       edges.Width,
		Height:      edges.Height,
		EdgePixels:  edges.Count(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
