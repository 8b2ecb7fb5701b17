package haar

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/vision-labs/internal/imaging"
)

// ScanOptions controls the window placement.
type ScanOptions struct {
	RowStep    int
	ColumnStep int
}

// DefaultScanOptions steps rows by a full window and columns by two pixels.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{RowStep: Size, ColumnStep: 2}
}

// Hit is a window whose response fell inside the search band.
type Hit struct {
	// Origin is the top-left pixel of the window.
	Origin image.Point `json:"origin"`
	// Center is Origin offset by half a window.
	Center image.Point `json:"center"`
	// Response is b-w for the window.
	Response float64 `json:"response"`
}

// Label is the text drawn next to a hit: |b-w| cut to five characters.
// Whole numbers keep one decimal, so 70 reads "70.0".
func (h Hit) Label() string {
	s := strconv.FormatFloat(math.Abs(h.Response), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	if len(s) > 5 {
		s = s[:5]
	}
	return s
}

// ScanResult summarises one search over a plane.
type ScanResult struct {
	Primitive string  `json:"primitive"`
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Hits      []Hit   `json:"hits"`

	// Windows is the number of windows evaluated. Max and Min are the
	// extreme responses over all of them and are zero when Windows is 0.
	Windows int     `json:"windows"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

// Count returns the number of hits.
func (r *ScanResult) Count() int {
	return len(r.Hits)
}

// Scan slides the primitive of s over p. Rows start at 0 and advance by
// opts.RowStep, columns start at 0 and advance by opts.ColumnStep; only
// placements where the whole window lies inside p are evaluated.
func Scan(p *imaging.Plane, s Search, opts ScanOptions) *ScanResult {
	if opts.RowStep < 1 {
		opts.RowStep = Size
	}
	if opts.ColumnStep < 1 {
		opts.ColumnStep = 2
	}

	res := &ScanResult{Primitive: s.Primitive.Name, Low: s.Low, High: s.High}
	cells := &s.Primitive.Pattern

	for row := 0; row+Size <= p.Height; row += opts.RowStep {
		for col := 0; col+Size <= p.Width; col += opts.ColumnStep {
			var b, w float64
			for px := 0; px < Size; px++ {
				for py := 0; py < Size; py++ {
					v := p.Pix[(row+py)*p.Width+col+px]
					if cells[py][px] == 1 {
						b += v
					} else {
						w += v
					}
				}
			}

			resp := b - w
			if res.Windows == 0 || resp > res.Max {
				res.Max = resp
			}
			if res.Windows == 0 || resp < res.Min {
				res.Min = resp
			}
			res.Windows++

			if d := math.Abs(resp); d > s.Low && d < s.High {
				res.Hits = append(res.Hits, Hit{
					Origin:   image.Pt(col, row),
					Center:   image.Pt(col+Size/2, row+Size/2),
					Response: resp,
				})
			}
		}
	}
	return res
}
