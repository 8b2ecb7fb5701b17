//go:build !gocv

package imaging

import (
	"errors"
	"image"

	"github.com/ironsheep/vision-labs/internal/morphology"
)

// GoCVCanny is unavailable without the gocv build tag.
type GoCVCanny struct{}

// Name implements EdgeDetector.
func (GoCVCanny) Name() string { return BackendGoCV }

// Detect implements EdgeDetector and always fails in this build.
func (GoCVCanny) Detect(image.Image, CannyOptions) (*morphology.Mask, error) {
	return nil, errors.New("gocv build tag is not enabled")
}
