package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYUVToRGB(t *testing.T) {
	tests := []struct {
		name    string
		y, u, v float64
		want    RGBColor
	}{
		{"black", 16, 128, 128, RGBColor{0, 0, 0}},
		{"studio white truncates", 235, 128, 128, RGBColor{254, 254, 254}},
		{"negative clamps to zero", 16, 0, 128, RGBColor{0, 50, 0}},
		{"overflow clamps to 255", 235, 255, 255, RGBColor{255, 102, 255}},
		{"carrot lower bound", 81.71, 100.03, 174.03, RGBColor{149, 50, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YUVToRGB(tt.y, tt.u, tt.v))
		})
	}
}

func TestRGBToYUV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		y, u, v float64
	}{
		{"black", 0, 0, 0, 16, 128, 128},
		{"white", 255, 255, 255, 235, 128, 128},
		{"red", 255, 0, 0, 16 + 65.481, 128 - 37.797, 128 + 112},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, u, v := RGBToYUV(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.y, y, 1e-9)
			assert.InDelta(t, tt.u, u, 1e-9)
			assert.InDelta(t, tt.v, v, 1e-9)
		})
	}
}

func TestRangeFromYUV(t *testing.T) {
	r := RangeFromYUV(YUVBounds{YMin: 16, YMax: 235, UMin: 128, UMax: 128, VMin: 128, VMax: 128})
	assert.Equal(t, RGBColor{0, 0, 0}, r.Min)
	assert.Equal(t, RGBColor{254, 254, 254}, r.Max)
}

func TestColorRange_Contains(t *testing.T) {
	cr := ColorRange{Min: RGBColor{90, 40, 40}, Max: RGBColor{110, 60, 60}}

	tests := []struct {
		name string
		c    RGBColor
		want bool
	}{
		{"inside", RGBColor{100, 50, 50}, true},
		{"on lower bound", RGBColor{90, 50, 50}, false},
		{"on upper bound", RGBColor{100, 50, 60}, false},
		{"one channel outside", RGBColor{100, 70, 50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cr.Contains(tt.c))
		})
	}
}

func TestColorMask(t *testing.T) {
	img := solidImage(4, 3, color.Black)
	img.Set(1, 1, color.RGBA{R: 100, G: 50, B: 50, A: 255})
	img.Set(2, 1, color.RGBA{R: 90, G: 50, B: 50, A: 255})

	m := ColorMask(img, ColorRange{Min: RGBColor{90, 40, 40}, Max: RGBColor{110, 60, 60}})
	assert.Equal(t, 4, m.Width)
	assert.Equal(t, 3, m.Height)
	assert.Equal(t, 1, m.Count())
	assert.True(t, m.Get(1, 1))
}

func TestSampleColor(t *testing.T) {
	img := solidImage(5, 5, color.RGBA{R: 255, A: 255})

	c, err := SampleColor(img, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, c.X)
	assert.Equal(t, 3, c.Y)
	assert.Equal(t, "#ff0000", c.Hex)
	assert.Equal(t, RGBColor{255, 0, 0}, c.RGB)
	assert.Equal(t, HSLColor{H: 0, S: 100, L: 50}, c.HSL)
	assert.InDelta(t, 81.48, c.YUV.Y, 1e-9)
	assert.InDelta(t, 90.2, c.YUV.U, 1e-9)
	assert.InDelta(t, 240, c.YUV.V, 1e-9)
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := solidImage(5, 5, color.White)

	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		_, err := SampleColor(img, pt[0], pt[1])
		assert.Error(t, err)
	}
}
