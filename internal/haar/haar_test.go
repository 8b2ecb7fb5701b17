package haar

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/vision-labs/internal/imaging"
)

// uniformPlane returns a width x height plane filled with v.
func uniformPlane(width, height int, v float64) *imaging.Plane {
	p := imaging.NewPlane(width, height)
	for i := range p.Pix {
		p.Pix[i] = v
	}
	return p
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		prim Primitive
		ones int
	}{
		{Haar10, 85},
		{Haar11, 76},
		{Haar12, 80},
	}

	for _, tt := range tests {
		t.Run(tt.prim.Name, func(t *testing.T) {
			assert.Equal(t, tt.ones, tt.prim.Ones())

			rows := tt.prim.Rows()
			require.Len(t, rows, Size)
			for _, row := range rows {
				assert.Len(t, row, Size)
			}
		})
	}

	assert.Equal(t, []uint8{1, 1, 1, 1, 1, 1, 1, 0, 0, 0}, Haar10.Rows()[3])
	assert.Equal(t, []uint8{1, 1, 0, 0, 0, 0, 0, 0, 1, 1}, Haar11.Rows()[0])
	assert.Equal(t, []uint8{0, 1, 1, 1, 1, 1, 1, 1, 1, 0}, Haar12.Rows()[9])
}

func TestLookup(t *testing.T) {
	p, err := Lookup("haar11")
	require.NoError(t, err)
	assert.Equal(t, Haar11, p)

	_, err = Lookup("haar99")
	assert.Error(t, err)

	assert.Equal(t, []string{"haar10", "haar11", "haar12"}, Names())
}

func TestScan_UniformPlane(t *testing.T) {
	p := uniformPlane(20, 25, 1)

	tests := []struct {
		name      string
		low, high float64
		wantHits  int
	}{
		{"band contains response", 69, 71, 12},
		{"lower bound is exclusive", 70, 71, 0},
		{"upper bound is exclusive", 69, 70, 0},
		{"band below response", 10, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Search{Primitive: Haar10, Low: tt.low, High: tt.high}
			res := Scan(p, s, DefaultScanOptions())

			// Rows 0 and 10 fit in 25 pixels; columns 0..10 step 2.
			assert.Equal(t, 12, res.Windows)
			assert.Equal(t, tt.wantHits, res.Count())
			assert.InDelta(t, 70, res.Max, 1e-9)
			assert.InDelta(t, 70, res.Min, 1e-9)
			assert.Equal(t, "haar10", res.Primitive)
		})
	}
}

func TestScan_HitGeometry(t *testing.T) {
	p := uniformPlane(12, 10, 0)
	// Light up the 0 region of haar10 in the first window only.
	for y := 0; y < 3; y++ {
		for x := 6; x < 10; x++ {
			p.Set(x, y, 1)
		}
	}

	s := Search{Primitive: Haar10, Low: 11, High: 13}
	res := Scan(p, s, DefaultScanOptions())

	assert.Equal(t, 2, res.Windows)
	require.Equal(t, 1, res.Count())
	hit := res.Hits[0]
	assert.Equal(t, image.Pt(0, 0), hit.Origin)
	assert.Equal(t, image.Pt(5, 5), hit.Center)
	assert.InDelta(t, -12, hit.Response, 1e-9)
	assert.InDelta(t, -12, res.Min, 1e-9)
	assert.Equal(t, "12.0", hit.Label())
}

func TestScan_PlaneSmallerThanWindow(t *testing.T) {
	res := Scan(uniformPlane(9, 40, 1), Presets["haar10"], DefaultScanOptions())
	assert.Zero(t, res.Windows)
	assert.Zero(t, res.Count())
	assert.Zero(t, res.Max)
}

func TestHit_Label(t *testing.T) {
	tests := []struct {
		response float64
		want     string
	}{
		{-34.35294117647059, "34.35"},
		{34.2, "34.2"},
		{70, "70.0"},
		{-12, "12.0"},
		{0, "0.0"},
		{12345, "12345"},
		{0.123456, "0.123"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Hit{Response: tt.response}.Label())
		})
	}
}

func TestParseSearch(t *testing.T) {
	tests := []struct {
		spec    string
		want    string
		wantErr bool
	}{
		{"haar10", "haar10:34.2:34.5:ws:7", false},
		{"haar11", "haar11:24:25:y^:6", false},
		{"haar12", "haar12:31:33:ro:4", false},
		{"haar10:30:31", "haar10:30:31:ws:7", false},
		{"haar11:1.5:2:ro", "haar11:1.5:2:ro:6", false},
		{"haar12:1:2:ws:9", "haar12:1:2:ws:9", false},
		{"haar10:30", "", true},
		{"haar10:31:30", "", true},
		{"haar10:a:30", "", true},
		{"haar10:1:2:zz", "", true},
		{"haar10:1:2:ws:0", "", true},
		{"haar10:1:2:ws:7:extra", "", true},
		{"haar42", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			s, err := ParseSearch(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestDefaultSearches(t *testing.T) {
	searches := DefaultSearches()
	require.Len(t, searches, 1)
	assert.Equal(t, "haar10", searches[0].Primitive.Name)
	assert.Equal(t, 34.2, searches[0].Low)
	assert.Equal(t, 34.5, searches[0].High)
	assert.Equal(t, 7, searches[0].MarkerSize)
}

func TestVotes(t *testing.T) {
	v := NewVotes()
	v.Add([]Hit{{Center: image.Pt(5, 5)}, {Center: image.Pt(15, 5)}})
	v.Add([]Hit{{Center: image.Pt(5, 5)}})

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 2, v.Count(image.Pt(5, 5)))
	assert.Equal(t, 1, v.Count(image.Pt(15, 5)))
	assert.Zero(t, v.Count(image.Pt(0, 0)))
	assert.Equal(t, []image.Point{image.Pt(15, 5)}, v.Centers(1))
	assert.Equal(t, []image.Point{image.Pt(5, 5)}, v.Centers(2))
	assert.Empty(t, v.Centers(3))
}

func TestPaintVotes(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 30, 20))
	c := imaging.NewCanvas(bg)

	v := NewVotes()
	v.Add([]Hit{{Center: image.Pt(5, 5)}, {Center: image.Pt(15, 5)}, {Center: image.Pt(5, 5)}})

	white := color.RGBA{255, 255, 255, 255}
	n := PaintVotes(c, v, 2, 3, white)
	assert.Equal(t, 1, n)
	assert.Equal(t, white, c.Image().RGBAAt(5, 5))
	assert.Equal(t, white, c.Image().RGBAAt(7, 5))
	assert.NotEqual(t, white, c.Image().RGBAAt(8, 5))
	assert.NotEqual(t, white, c.Image().RGBAAt(15, 5))
}
