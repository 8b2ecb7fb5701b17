package haar

import (
	"image"
	"image/color"

	"github.com/ironsheep/vision-labs/internal/imaging"
)

// Votes counts how many hits landed on each window centre.
type Votes struct {
	counts map[image.Point]int
	order  []image.Point
}

// NewVotes returns an empty tally.
func NewVotes() *Votes {
	return &Votes{counts: make(map[image.Point]int)}
}

// Add records one vote per hit.
func (v *Votes) Add(hits []Hit) {
	for _, h := range hits {
		if v.counts[h.Center] == 0 {
			v.order = append(v.order, h.Center)
		}
		v.counts[h.Center]++
	}
}

// Count returns the votes for centre p.
func (v *Votes) Count(p image.Point) int {
	return v.counts[p]
}

// Len returns the number of distinct centres.
func (v *Votes) Len() int {
	return len(v.order)
}

// Centers returns the centres with exactly amount votes, in the order they
// were first seen.
func (v *Votes) Centers(amount int) []image.Point {
	var out []image.Point
	for _, p := range v.order {
		if v.counts[p] == amount {
			out = append(out, p)
		}
	}
	return out
}

// PaintVotes fills a disk of the given radius at every centre with exactly
// amount votes and returns the number of disks painted.
func PaintVotes(c *imaging.Canvas, v *Votes, amount, radius int, col color.Color) int {
	centers := v.Centers(amount)
	for _, p := range centers {
		c.FillDisk(p, radius, col)
	}
	return len(centers)
}
