package haar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/vision-labs/internal/imaging"
)

// Search is one primitive with its acceptance band and the marker used to
// draw its hits.
type Search struct {
	Primitive  Primitive
	Low        float64
	High       float64
	Marker     imaging.MarkerStyle
	MarkerSize int
}

// String renders the search in the form accepted by ParseSearch.
func (s Search) String() string {
	return fmt.Sprintf("%s:%s:%s:%s:%d",
		s.Primitive.Name,
		strconv.FormatFloat(s.Low, 'f', -1, 64),
		strconv.FormatFloat(s.High, 'f', -1, 64),
		s.Marker, s.MarkerSize)
}

func preset(p Primitive, low, high float64, marker string, size int) Search {
	style, err := imaging.ParseMarkerStyle(marker)
	if err != nil {
		panic(err)
	}
	return Search{Primitive: p, Low: low, High: high, Marker: style, MarkerSize: size}
}

// Presets holds the tuned search for each built-in primitive.
var Presets = map[string]Search{
	Haar10.Name: preset(Haar10, 34.2, 34.5, "ws", 7),
	Haar11.Name: preset(Haar11, 24, 25, "y^", 6),
	Haar12.Name: preset(Haar12, 31, 33, "ro", 4),
}

// DefaultSearches returns the searches run when none are requested.
func DefaultSearches() []Search {
	return []Search{Presets[Haar10.Name]}
}

// ParseSearch parses "name[:low:high[:marker[:size]]]". Omitted fields
// come from the preset of the named primitive.
func ParseSearch(spec string) (Search, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) == 2 || len(parts) > 5 {
		return Search{}, fmt.Errorf("invalid search %q: want name[:low:high[:marker[:size]]]", spec)
	}

	if _, err := Lookup(parts[0]); err != nil {
		return Search{}, fmt.Errorf("invalid search %q: %w", spec, err)
	}
	s := Presets[parts[0]]

	if len(parts) >= 3 {
		low, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return Search{}, fmt.Errorf("invalid search %q: bad low threshold: %w", spec, err)
		}
		high, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return Search{}, fmt.Errorf("invalid search %q: bad high threshold: %w", spec, err)
		}
		if low >= high {
			return Search{}, fmt.Errorf("invalid search %q: low threshold must be below high", spec)
		}
		s.Low, s.High = low, high
	}
	if len(parts) >= 4 {
		style, err := imaging.ParseMarkerStyle(parts[3])
		if err != nil {
			return Search{}, fmt.Errorf("invalid search %q: %w", spec, err)
		}
		s.Marker = style
	}
	if len(parts) == 5 {
		size, err := strconv.Atoi(parts[4])
		if err != nil || size < 1 {
			return Search{}, fmt.Errorf("invalid search %q: bad marker size %q", spec, parts[4])
		}
		s.MarkerSize = size
	}
	return s, nil
}
