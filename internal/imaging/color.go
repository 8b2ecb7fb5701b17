package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/vision-labs/internal/morphology"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// YUVColor is a studio-swing BT.601 YCbCr triple. Y nominally spans
// 16..235 and U (Cb) and V (Cr) are centred on 128.
type YUVColor struct {
	Y float64 `json:"y"`
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// The YUV field gives the value in the same space menu item bounds are
// written in, which makes it the quickest way to tune a catalogue entry.
type ColorResult struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // Hex format "#rrggbb"
	RGB RGBColor `json:"rgb"`
	YUV YUVColor `json:"yuv"`
	HSL HSLColor `json:"hsl"`
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	c := colorful.Color{R: float64(r8) / 255, G: float64(g8) / 255, B: float64(b8) / 255}
	h, s, l := c.Hsl()

	yy, u, v := RGBToYUV(r8, g8, b8)
	return &ColorResult{
		X:   x,
		Y:   y,
		Hex: c.Hex(),
		RGB: RGBColor{R: r8, G: g8, B: b8},
		YUV: YUVColor{
			Y: math.Round(yy*100) / 100,
			U: math.Round(u*100) / 100,
			V: math.Round(v*100) / 100,
		},
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}, nil
}

// YUVToRGB converts a studio-swing YCbCr triple to RGB:
//
//	R = 1.164(Y-16) + 1.596(V-128)
//	G = 1.164(Y-16) - 0.813(V-128) - 0.391(U-128)
//	B = 1.164(Y-16) + 2.018(U-128)
//
// Each component is truncated toward zero and then clamped to 0..255.
func YUVToRGB(y, u, v float64) RGBColor {
	r := 1.164*(y-16) + 1.596*(v-128)
	g := 1.164*(y-16) - 0.813*(v-128) - 0.391*(u-128)
	b := 1.164*(y-16) + 2.018*(u-128)
	return RGBColor{R: truncClamp(r), G: truncClamp(g), B: truncClamp(b)}
}

// RGBToYUV converts 8-bit RGB to studio-swing YCbCr.
func RGBToYUV(r, g, b uint8) (y, u, v float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	y = 16 + (65.481*rf+128.553*gf+24.966*bf)/255
	u = 128 + (-37.797*rf-74.203*gf+112.0*bf)/255
	v = 128 + (112.0*rf-93.786*gf-18.214*bf)/255
	return y, u, v
}

func truncClamp(f float64) uint8 {
	n := int(f)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// YUVBounds holds per-channel YCbCr limits for one menu item.
type YUVBounds struct {
	YMin float64 `json:"y_min" yaml:"y_min"`
	YMax float64 `json:"y_max" yaml:"y_max"`
	UMin float64 `json:"u_min" yaml:"u_min"`
	UMax float64 `json:"u_max" yaml:"u_max"`
	VMin float64 `json:"v_min" yaml:"v_min"`
	VMax float64 `json:"v_max" yaml:"v_max"`
}

// ColorRange is an RGB box. A pixel is inside when every channel lies
// strictly between Min and Max.
type ColorRange struct {
	Min RGBColor `json:"min"`
	Max RGBColor `json:"max"`
}

// RangeFromYUV converts YCbCr bounds to an RGB range by converting the
// lower and upper corners independently.
func RangeFromYUV(b YUVBounds) ColorRange {
	return ColorRange{
		Min: YUVToRGB(b.YMin, b.UMin, b.VMin),
		Max: YUVToRGB(b.YMax, b.UMax, b.VMax),
	}
}

// Contains reports whether c lies strictly inside the range on all
// three channels.
func (cr ColorRange) Contains(c RGBColor) bool {
	return cr.Min.R < c.R && c.R < cr.Max.R &&
		cr.Min.G < c.G && c.G < cr.Max.G &&
		cr.Min.B < c.B && c.B < cr.Max.B
}

// ColorMask returns the mask of pixels whose colour lies inside cr.
// The mask is anchored at the origin.
func ColorMask(img image.Image, cr ColorRange) *morphology.Mask {
	src := clone.AsRGBA(img)
	b := src.Bounds()
	m := morphology.NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			pos := y*src.Stride + x*4
			c := RGBColor{R: src.Pix[pos], G: src.Pix[pos+1], B: src.Pix[pos+2]}
			m.Pix[y*m.Width+x] = cr.Contains(c)
		}
	}
	return m
}
