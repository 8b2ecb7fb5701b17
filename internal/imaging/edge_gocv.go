//go:build gocv

package imaging

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/vision-labs/internal/morphology"
)

// GoCVCanny runs Canny through OpenCV.
//
// OpenCV thresholds the 8-bit gradient, so Low and High are scaled by 255.
// Results differ from NativeCanny in detail but agree on closed outlines.
type GoCVCanny struct{}

// Name implements EdgeDetector.
func (GoCVCanny) Name() string { return BackendGoCV }

// Detect implements EdgeDetector.
func (GoCVCanny) Detect(img image.Image, opts CannyOptions) (*morphology.Mask, error) {
	gray := GrayImage(img)
	width, height := gray.Rect.Dx(), gray.Rect.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	src, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC1, gray.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to create mat: %w", err)
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	if opts.Sigma > 0 {
		gocv.GaussianBlur(src, &blurred, image.Point{}, opts.Sigma, opts.Sigma, gocv.BorderReflect)
	} else {
		src.CopyTo(&blurred)
	}

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, float32(opts.Low*255), float32(opts.High*255))

	data := edges.ToBytes()
	mask := morphology.NewMask(width, height)
	for i := range mask.Pix {
		mask.Pix[i] = i < len(data) && data[i] != 0
	}
	return mask, nil
}
