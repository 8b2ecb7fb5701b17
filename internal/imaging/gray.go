package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"
)

// Luminance weights (ITU-R BT.709).
const (
	LumaR = 0.2125
	LumaG = 0.7154
	LumaB = 0.0721
)

// Plane is a single-channel float image. Pixel (x, y) lives at
// Pix[y*Width+x]; grayscale planes hold values in [0,1].
type Plane struct {
	Width  int
	Height int
	Pix    []float64
}

// NewPlane returns a zeroed plane.
func NewPlane(width, height int) *Plane {
	return &Plane{Width: width, Height: height, Pix: make([]float64, width*height)}
}

// At returns the value at (x, y). No bounds checking is performed.
func (p *Plane) At(x, y int) float64 {
	return p.Pix[y*p.Width+x]
}

// Set stores v at (x, y). No bounds checking is performed.
func (p *Plane) Set(x, y int, v float64) {
	p.Pix[y*p.Width+x] = v
}

// ToGray converts the plane to an 8-bit image, clamping to [0,1].
func (p *Plane) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			v := p.Pix[y*p.Width+x]
			switch {
			case v <= 0:
				v = 0
			case v >= 1:
				v = 1
			}
			img.Pix[y*img.Stride+x] = uint8(v*255 + 0.5)
		}
	}
	return img
}

// GrayPlane converts img to a float luminance plane in [0,1].
//
// The computation is done in float64 on the 8-bit channels so small
// differences between neighbouring windows survive; the Haar scan relies
// on this.
func GrayPlane(img image.Image) *Plane {
	src := clone.AsRGBA(img)
	b := src.Bounds()
	p := NewPlane(b.Dx(), b.Dy())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			pos := y*src.Stride + x*4
			r := float64(src.Pix[pos+0])
			g := float64(src.Pix[pos+1])
			bl := float64(src.Pix[pos+2])
			p.Pix[y*p.Width+x] = (LumaR*r + LumaG*g + LumaB*bl) / 255
		}
	}
	return p
}

// GrayImage converts img to an 8-bit grayscale image with the same
// luminance weights as GrayPlane. The result is anchored at the origin.
func GrayImage(img image.Image) *image.Gray {
	rgba := effect.GrayscaleWithWeights(img, LumaR, LumaG, LumaB)
	b := rgba.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = rgba.Pix[y*rgba.Stride+x*4]
		}
	}
	return dst
}

// PlaneFromGray reads an 8-bit grayscale image into a plane in [0,1].
// Only the first channel is read, so any image holding equal channels
// works too.
func PlaneFromGray(img image.Image) *Plane {
	src := clone.AsRGBA(img)
	b := src.Bounds()
	p := NewPlane(b.Dx(), b.Dy())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			p.Pix[y*p.Width+x] = float64(src.Pix[y*src.Stride+x*4]) / 255
		}
	}
	return p
}
