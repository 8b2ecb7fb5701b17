package detection

import (
	"math"
	"sort"
)

// Axis names the coordinate a run was found on.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// AxisValue is one numbered point's coordinate on an axis.
type AxisValue struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Run is a group of points lying approximately on one line perpendicular
// to Axis.
type Run struct {
	Axis    Axis        `json:"axis"`
	Members []AxisValue `json:"members"`

	// Mean and Spread are the average and population standard deviation
	// of the member values.
	Mean   float64 `json:"mean"`
	Spread float64 `json:"spread"`
}

// FindAlignedRuns sorts values and splits them into maximal runs where
// every pair of sorted neighbours differs by less than threshold.
// Only runs with at least two members are returned, in ascending order.
func FindAlignedRuns(values []AxisValue, axis Axis, threshold float64) []Run {
	if len(values) < 2 {
		return nil
	}

	sorted := make([]AxisValue, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value < sorted[j].Value
	})

	var runs []Run
	current := []AxisValue{sorted[0]}
	flush := func() {
		if len(current) > 1 {
			runs = append(runs, newRun(axis, current))
		}
	}

	for i := 1; i < len(sorted); i++ {
		if math.Abs(sorted[i].Value-sorted[i-1].Value) < threshold {
			current = append(current, sorted[i])
			continue
		}
		flush()
		current = []AxisValue{sorted[i]}
	}
	flush()

	return runs
}

func newRun(axis Axis, members []AxisValue) Run {
	var sum float64
	for _, m := range members {
		sum += m.Value
	}
	mean := sum / float64(len(members))

	var variance float64
	for _, m := range members {
		d := m.Value - mean
		variance += d * d
	}

	return Run{
		Axis:    axis,
		Members: members,
		Mean:    math.Round(mean*100) / 100,
		Spread:  math.Round(math.Sqrt(variance/float64(len(members)))*100) / 100,
	}
}

// AlignmentResult summarises how tightly a set of centroids lines up.
type AlignmentResult struct {
	HorizontallyAligned bool    `json:"horizontally_aligned"`
	VerticallyAligned   bool    `json:"vertically_aligned"`
	HorizontalVariance  float64 `json:"horizontal_variance"`
	VerticalVariance    float64 `json:"vertical_variance"`
	AverageY            float64 `json:"average_y"`
	AverageX            float64 `json:"average_x"`
}

// CheckAlignment checks if points are aligned horizontally or vertically.
// The variances are population standard deviations; fewer than two points
// count as aligned both ways.
func CheckAlignment(points []Centroid, tolerance float64) AlignmentResult {
	if len(points) < 2 {
		res := AlignmentResult{HorizontallyAligned: true, VerticallyAligned: true}
		if len(points) == 1 {
			res.AverageX = math.Round(points[0].X*100) / 100
			res.AverageY = math.Round(points[0].Y*100) / 100
		}
		return res
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	avgX := sumX / float64(len(points))
	avgY := sumY / float64(len(points))

	var varX, varY float64
	for _, p := range points {
		dx := p.X - avgX
		dy := p.Y - avgY
		varX += dx * dx
		varY += dy * dy
	}
	varX = math.Sqrt(varX / float64(len(points)))
	varY = math.Sqrt(varY / float64(len(points)))

	return AlignmentResult{
		HorizontallyAligned: varY <= tolerance,
		VerticallyAligned:   varX <= tolerance,
		HorizontalVariance:  math.Round(varY*100) / 100,
		VerticalVariance:    math.Round(varX*100) / 100,
		AverageY:            math.Round(avgY*100) / 100,
		AverageX:            math.Round(avgX*100) / 100,
	}
}
