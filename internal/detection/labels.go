package detection

import (
	"image"

	"github.com/ironsheep/vision-labs/internal/morphology"
)

// Connectivity selects which neighbours join pixels into one component.
type Connectivity int

const (
	// Four joins horizontal and vertical neighbours only.
	Four Connectivity = 4
	// Eight also joins diagonal neighbours.
	Eight Connectivity = 8
)

var (
	offsets4 = []image.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	offsets8 = []image.Point{
		{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
		{X: -1, Y: 0}, {X: 1, Y: 0},
		{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
	}
)

// Labels is a label image: Pix[y*Width+x] holds the component label of
// each pixel, 0 for background.
type Labels struct {
	Width  int
	Height int
	Pix    []int
	Count  int
}

// At returns the label at (x, y), or 0 outside the image.
func (l *Labels) At(x, y int) int {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0
	}
	return l.Pix[y*l.Width+x]
}

// Label finds the connected components of mask.
//
// Components are flood-filled with an explicit stack rather than recursion
// so that large blobs cannot overflow the goroutine stack. Labels are
// assigned in raster order of each component's first pixel.
func Label(mask *morphology.Mask, conn Connectivity) *Labels {
	w, h := mask.Width, mask.Height
	labels := &Labels{Width: w, Height: h, Pix: make([]int, w*h)}

	neighbours := offsets8
	if conn == Four {
		neighbours = offsets4
	}

	stack := make([]image.Point, 0, 64)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !mask.Pix[i] || labels.Pix[i] != 0 {
				continue
			}

			labels.Count++
			id := labels.Count
			labels.Pix[i] = id
			stack = append(stack[:0], image.Pt(x, y))

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				for _, o := range neighbours {
					nx, ny := p.X+o.X, p.Y+o.Y
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					j := ny*w + nx
					if mask.Pix[j] && labels.Pix[j] == 0 {
						labels.Pix[j] = id
						stack = append(stack, image.Pt(nx, ny))
					}
				}
			}
		}
	}

	return labels
}
