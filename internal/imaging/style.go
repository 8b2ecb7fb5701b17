package imaging

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MarkerShape is the glyph drawn at a point.
type MarkerShape string

const (
	MarkerSquare   MarkerShape = "s"
	MarkerTriangle MarkerShape = "^"
	MarkerCircle   MarkerShape = "o"
)

// MarkerStyle combines a marker glyph with its colour, written in the
// short plot notation: a colour letter followed by a shape, e.g. "ws".
type MarkerStyle struct {
	Color color.RGBA
	Shape MarkerShape
}

var namedColors = map[string]string{
	"white":   "#ffffff",
	"black":   "#000000",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
}

// Single-letter colour codes accepted in marker styles.
var letterColors = map[byte]string{
	'w': "white",
	'k': "black",
	'r': "red",
	'g': "green",
	'b': "blue",
	'y': "yellow",
	'c': "cyan",
	'm': "magenta",
}

// ParseColor accepts a colour name ("white", "red", ...) or a hex string
// ("#ff8800").
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is ParseColor for package-level constants.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseMarkerStyle parses a two-character style such as "ws" (white
// square), "y^" (yellow triangle) or "ro" (red circle).
func ParseMarkerStyle(s string) (MarkerStyle, error) {
	if len(s) != 2 {
		return MarkerStyle{}, fmt.Errorf("invalid marker style %q: want color letter and shape", s)
	}
	name, ok := letterColors[s[0]]
	if !ok {
		return MarkerStyle{}, fmt.Errorf("invalid marker style %q: unknown color %q", s, s[0])
	}
	shape := MarkerShape(s[1:])
	switch shape {
	case MarkerSquare, MarkerTriangle, MarkerCircle:
	default:
		return MarkerStyle{}, fmt.Errorf("invalid marker style %q: unknown shape %q", s, s[1:])
	}
	return MarkerStyle{Color: MustColor(name), Shape: shape}, nil
}

// String returns the short notation of the style.
func (m MarkerStyle) String() string {
	for letter, name := range letterColors {
		if MustColor(name) == m.Color {
			return string(letter) + string(m.Shape)
		}
	}
	return colorful.Color{
		R: float64(m.Color.R) / 255,
		G: float64(m.Color.G) / 255,
		B: float64(m.Color.B) / 255,
	}.Hex() + string(m.Shape)
}
