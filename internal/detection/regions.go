package detection

import (
	"image"
	"math"

	"github.com/ironsheep/vision-labs/internal/morphology"
)

// Centroid is the mean pixel position of a region.
type Centroid struct {
	X float64 `json:"x"` // mean column
	Y float64 `json:"y"` // mean row
}

// Point rounds the centroid to the nearest pixel.
func (c Centroid) Point() image.Point {
	return image.Pt(int(math.Round(c.X)), int(math.Round(c.Y)))
}

// Region holds the measurements of one labelled component.
type Region struct {
	// Label is the component label in the source Labels.
	Label int `json:"label"`

	// Area is the number of pixels in the component.
	Area int `json:"area"`

	// Bounds is the bounding box; Min is inclusive, Max exclusive.
	Bounds image.Rectangle `json:"bounds"`

	// Centroid is the mean pixel position.
	Centroid Centroid `json:"centroid"`
}

// Regions measures every label in l and returns them ordered by label.
func Regions(l *Labels) []Region {
	if l.Count == 0 {
		return nil
	}

	regions := make([]Region, l.Count)
	sumX := make([]float64, l.Count)
	sumY := make([]float64, l.Count)
	for i := range regions {
		regions[i].Label = i + 1
	}

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			id := l.Pix[y*l.Width+x]
			if id == 0 {
				continue
			}
			r := &regions[id-1]
			if r.Area == 0 {
				r.Bounds = image.Rect(x, y, x+1, y+1)
			} else {
				if x < r.Bounds.Min.X {
					r.Bounds.Min.X = x
				}
				if x+1 > r.Bounds.Max.X {
					r.Bounds.Max.X = x + 1
				}
				if y+1 > r.Bounds.Max.Y {
					r.Bounds.Max.Y = y + 1
				}
			}
			r.Area++
			sumX[id-1] += float64(x)
			sumY[id-1] += float64(y)
		}
	}

	for i := range regions {
		if regions[i].Area > 0 {
			regions[i].Centroid = Centroid{
				X: sumX[i] / float64(regions[i].Area),
				Y: sumY[i] / float64(regions[i].Area),
			}
		}
	}
	return regions
}

// AreaRange bounds region areas. A zero Max means no upper bound.
// Exclusive switches both comparisons to strict inequalities.
type AreaRange struct {
	Min       int  `json:"min" yaml:"min"`
	Max       int  `json:"max" yaml:"max"`
	Exclusive bool `json:"exclusive,omitempty" yaml:"exclusive,omitempty"`
}

// Contains reports whether area lies in the range.
func (r AreaRange) Contains(area int) bool {
	if r.Exclusive {
		return area > r.Min && (r.Max == 0 || area < r.Max)
	}
	return area >= r.Min && (r.Max == 0 || area <= r.Max)
}

// FilterByArea returns the regions whose area lies in r, preserving order.
func FilterByArea(regions []Region, r AreaRange) []Region {
	out := make([]Region, 0, len(regions))
	for _, reg := range regions {
		if r.Contains(reg.Area) {
			out = append(out, reg)
		}
	}
	return out
}

// HasAreaInRange labels mask with 8-connectivity and reports whether at
// least one component has an area inside r.
func HasAreaInRange(mask *morphology.Mask, r AreaRange) bool {
	for _, reg := range Regions(Label(mask, Eight)) {
		if r.Contains(reg.Area) {
			return true
		}
	}
	return false
}
