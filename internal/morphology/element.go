package morphology

import (
	"fmt"
	"image"
)

// Shape identifies the family of a structuring element.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeDisk
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeDisk:
		return "disk"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// StructuringElement is a footprint of offsets relative to the pixel being
// processed.
type StructuringElement struct {
	Shape   Shape
	Size    int // side for squares, radius for disks
	Offsets []image.Point
}

// Square returns an n x n structuring element. n < 1 is treated as 1.
func Square(n int) StructuringElement {
	if n < 1 {
		n = 1
	}
	lo := -(n >> 1)
	offsets := make([]image.Point, 0, n*n)
	for dy := lo; dy < lo+n; dy++ {
		for dx := lo; dx < lo+n; dx++ {
			offsets = append(offsets, image.Pt(dx, dy))
		}
	}
	return StructuringElement{Shape: ShapeSquare, Size: n, Offsets: offsets}
}

// Disk returns a disk of radius r: all offsets with dx²+dy² <= r².
// r < 0 is treated as 0.
func Disk(r int) StructuringElement {
	if r < 0 {
		r = 0
	}
	offsets := make([]image.Point, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				offsets = append(offsets, image.Pt(dx, dy))
			}
		}
	}
	return StructuringElement{Shape: ShapeDisk, Size: r, Offsets: offsets}
}

func (se StructuringElement) String() string {
	return fmt.Sprintf("%s(%d)", se.Shape, se.Size)
}

// bildRadius converts a square side into the radius bild's spatial filters
// expect; they build a kernel of int(2*radius+1.5) pixels.
func (se StructuringElement) bildRadius() float64 {
	return float64(se.Size-1) / 2
}
