package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/vision-labs/internal/detection"
)

// lineHeight is the advance between text lines of basicfont.Face7x13.
const lineHeight = 13

// Canvas is an RGBA drawing surface anchored at the origin. All drawing
// operations clip silently at the image border.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a canvas holding a copy of background.
func NewCanvas(background image.Image) *Canvas {
	b := background.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), background, b.Min, draw.Src)
	return &Canvas{img: img}
}

// Image returns the underlying image. Further drawing modifies it.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

// Set paints one pixel.
func (c *Canvas) Set(x, y int, col color.Color) {
	if image.Pt(x, y).In(c.img.Rect) {
		c.img.Set(x, y, col)
	}
}

func (c *Canvas) fill(r image.Rectangle, col color.Color) {
	r = r.Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// StrokeRect outlines r with a border width pixels thick, drawn inward
// from the edge of r. r.Max is exclusive.
func (c *Canvas) StrokeRect(r image.Rectangle, col color.Color, width int) {
	if width < 1 {
		width = 1
	}
	for t := 0; t < width; t++ {
		in := image.Rect(r.Min.X+t, r.Min.Y+t, r.Max.X-t, r.Max.Y-t)
		if in.Empty() {
			return
		}
		c.fill(image.Rect(in.Min.X, in.Min.Y, in.Max.X, in.Min.Y+1), col)
		c.fill(image.Rect(in.Min.X, in.Max.Y-1, in.Max.X, in.Max.Y), col)
		c.fill(image.Rect(in.Min.X, in.Min.Y, in.Min.X+1, in.Max.Y), col)
		c.fill(image.Rect(in.Max.X-1, in.Min.Y, in.Max.X, in.Max.Y), col)
	}
}

// Marker draws a filled glyph of the given size centred on pt.
func (c *Canvas) Marker(pt image.Point, style MarkerStyle, size int) {
	if size < 1 {
		size = 1
	}
	half := size / 2
	switch style.Shape {
	case MarkerTriangle:
		// Apex at the top, base on the bottom row.
		for row := 0; row < size; row++ {
			w := row * half / maxInt(size-1, 1)
			y := pt.Y - half + row
			c.fill(image.Rect(pt.X-w, y, pt.X+w+1, y+1), style.Color)
		}
	case MarkerCircle:
		r := half
		if r < 1 {
			r = 1
		}
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy <= r*r {
					c.Set(pt.X+dx, pt.Y+dy, style.Color)
				}
			}
		}
	default:
		c.fill(image.Rect(pt.X-half, pt.Y-half, pt.X-half+size, pt.Y-half+size), style.Color)
	}
}

// FillDisk paints every pixel strictly closer than radius to center.
func (c *Canvas) FillDisk(center image.Point, radius int, col color.Color) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy < radius*radius {
				c.Set(center.X+dx, center.Y+dy, col)
			}
		}
	}
}

// Pattern paints a 0/1 pattern with its top-left corner at origin: cells
// holding 1 get on, cells holding 0 get off.
func (c *Canvas) Pattern(origin image.Point, pattern [][]uint8, on, off color.Color) {
	for row, cells := range pattern {
		for col, v := range cells {
			if v != 0 {
				c.Set(origin.X+col, origin.Y+row, on)
			} else {
				c.Set(origin.X+col, origin.Y+row, off)
			}
		}
	}
}

// Text draws text with its top-left corner at pt. Newlines start a new
// line below the previous one.
func (c *Canvas) Text(pt image.Point, text string, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(pt.X, pt.Y+face.Ascent+i*lineHeight)
		d.DrawString(line)
	}
}

// TextInside draws text like Text, moving pt left and up as far as needed
// to keep the whole block on the canvas.
func (c *Canvas) TextInside(pt image.Point, text string, col color.Color) {
	r := c.img.Rect
	height := (strings.Count(text, "\n") + 1) * lineHeight
	if over := pt.X + TextWidth(text) - r.Max.X; over > 0 {
		pt.X -= over
	}
	if over := pt.Y + height - r.Max.Y; over > 0 {
		pt.Y -= over
	}
	pt.X = maxInt(pt.X, r.Min.X)
	pt.Y = maxInt(pt.Y, r.Min.Y)
	c.Text(pt, text, col)
}

// TextWidth returns the pixel width of the widest line of text.
func TextWidth(text string) int {
	widest := 0
	for _, line := range strings.Split(text, "\n") {
		w := font.MeasureString(basicfont.Face7x13, line).Ceil()
		if w > widest {
			widest = w
		}
	}
	return widest
}

// LabelOverlay renders a label image with one distinct colour per label
// and black background.
func LabelOverlay(labels *detection.Labels) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, labels.Width, labels.Height))
	if labels.Count == 0 {
		draw.Draw(img, img.Rect, image.NewUniform(color.Black), image.Point{}, draw.Src)
		return img
	}

	palette := colorful.FastHappyPalette(labels.Count)
	colors := make([]color.RGBA, labels.Count+1)
	colors[0] = color.RGBA{A: 255}
	for i, pc := range palette {
		r, g, b := pc.Clamped().RGB255()
		colors[i+1] = color.RGBA{R: r, G: g, B: b, A: 255}
	}

	for y := 0; y < labels.Height; y++ {
		for x := 0; x < labels.Width; x++ {
			img.SetRGBA(x, y, colors[labels.Pix[y*labels.Width+x]])
		}
	}
	return img
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
