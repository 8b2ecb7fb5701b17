package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indices(run Run) []int {
	out := make([]int, len(run.Members))
	for i, m := range run.Members {
		out[i] = m.Index
	}
	return out
}

func TestFindAlignedRuns(t *testing.T) {
	tests := []struct {
		name      string
		values    []AxisValue
		threshold float64
		want      [][]int
	}{
		{
			name:      "empty",
			values:    nil,
			threshold: 5,
			want:      nil,
		},
		{
			name:      "single point",
			values:    []AxisValue{{1, 10}},
			threshold: 5,
			want:      nil,
		},
		{
			name:      "all apart",
			values:    []AxisValue{{1, 10}, {2, 20}, {3, 30}},
			threshold: 5,
			want:      nil,
		},
		{
			name:      "one run at the end",
			values:    []AxisValue{{1, 100}, {2, 10}, {3, 102.5}},
			threshold: 5,
			want:      [][]int{{1, 3}},
		},
		{
			name:      "two runs",
			values:    []AxisValue{{1, 50}, {2, 10}, {3, 52}, {4, 13}, {5, 80}},
			threshold: 5,
			want:      [][]int{{2, 4}, {1, 3}},
		},
		{
			name:      "chained neighbours form one run",
			values:    []AxisValue{{1, 0}, {2, 4}, {3, 8}, {4, 12}},
			threshold: 5,
			want:      [][]int{{1, 2, 3, 4}},
		},
		{
			name:      "difference equal to threshold breaks the run",
			values:    []AxisValue{{1, 0}, {2, 5}},
			threshold: 5,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := FindAlignedRuns(tt.values, AxisY, tt.threshold)
			require.Len(t, runs, len(tt.want))
			for i, run := range runs {
				assert.Equal(t, AxisY, run.Axis)
				assert.Equal(t, tt.want[i], indices(run))
			}
		})
	}
}

func TestFindAlignedRuns_Stats(t *testing.T) {
	runs := FindAlignedRuns([]AxisValue{{1, 10}, {2, 12}, {3, 14}}, AxisX, 5)
	require.Len(t, runs, 1)
	assert.InDelta(t, 12, runs[0].Mean, 1e-9)
	assert.InDelta(t, 1.63, runs[0].Spread, 1e-9)
}

func TestFindAlignedRuns_DoesNotReorderInput(t *testing.T) {
	values := []AxisValue{{1, 30}, {2, 10}, {3, 31}}
	FindAlignedRuns(values, AxisX, 5)
	assert.Equal(t, 1, values[0].Index)
	assert.Equal(t, 2, values[1].Index)
}

func TestCheckAlignment(t *testing.T) {
	tests := []struct {
		name       string
		points     []Centroid
		horizontal bool
		vertical   bool
	}{
		{"no points", nil, true, true},
		{"single point", []Centroid{{X: 4, Y: 9}}, true, true},
		{"horizontal row", []Centroid{{X: 0, Y: 10}, {X: 50, Y: 11}, {X: 100, Y: 10}}, true, false},
		{"vertical column", []Centroid{{X: 7, Y: 0}, {X: 8, Y: 40}}, false, true},
		{"scattered", []Centroid{{X: 0, Y: 0}, {X: 60, Y: 90}}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckAlignment(tt.points, 5)
			assert.Equal(t, tt.horizontal, res.HorizontallyAligned)
			assert.Equal(t, tt.vertical, res.VerticallyAligned)
		})
	}
}

func TestCheckAlignment_Averages(t *testing.T) {
	res := CheckAlignment([]Centroid{{X: 0, Y: 10}, {X: 10, Y: 20}}, 5)
	assert.InDelta(t, 5, res.AverageX, 1e-9)
	assert.InDelta(t, 15, res.AverageY, 1e-9)
	assert.InDelta(t, 5, res.HorizontalVariance, 1e-9)
	assert.InDelta(t, 5, res.VerticalVariance, 1e-9)
}
