package haar

import (
	"fmt"
	"sort"
)

// Size is the side of every primitive window, in pixels.
const Size = 10

// Primitive is a named Size x Size pattern of 0 and 1 cells, indexed
// [row][column].
type Primitive struct {
	Name    string
	Pattern [Size][Size]uint8
}

// Rows returns the pattern as a slice of rows.
func (p Primitive) Rows() [][]uint8 {
	rows := make([][]uint8, Size)
	for r := range p.Pattern {
		rows[r] = p.Pattern[r][:]
	}
	return rows
}

// Ones returns the number of 1 cells.
func (p Primitive) Ones() int {
	n := 0
	for _, row := range p.Pattern {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func pattern(rows ...string) [Size][Size]uint8 {
	var out [Size][Size]uint8
	for r, row := range rows {
		for c := 0; c < Size; c++ {
			if row[c] == '1' {
				out[r][c] = 1
			}
		}
	}
	return out
}

var (
	// Haar10 has a 0 block in the top right corner.
	Haar10 = Primitive{Name: "haar10", Pattern: pattern(
		"1111110000",
		"1111110000",
		"1111110000",
		"1111111000",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
	)}

	// Haar11 has a 0 notch in the middle of the top edge.
	Haar11 = Primitive{Name: "haar11", Pattern: pattern(
		"1100000011",
		"1100000011",
		"1100000011",
		"1100000011",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
	)}

	// Haar12 is a vertical bar with 0 columns on both sides.
	Haar12 = Primitive{Name: "haar12", Pattern: pattern(
		"0111111110",
		"0111111110",
		"0111111110",
		"0111111110",
		"0111111110",
		"0111111110",
		"0111111110",
		"0111111110",
		"0111111110",
		"0111111110",
	)}
)

var primitives = map[string]Primitive{
	Haar10.Name: Haar10,
	Haar11.Name: Haar11,
	Haar12.Name: Haar12,
}

// Lookup returns the built-in primitive with the given name.
func Lookup(name string) (Primitive, error) {
	p, ok := primitives[name]
	if !ok {
		return Primitive{}, fmt.Errorf("unknown haar primitive: %s (known: %v)", name, Names())
	}
	return p, nil
}

// Names lists the built-in primitives in sorted order.
func Names() []string {
	names := make([]string, 0, len(primitives))
	for name := range primitives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
