package labs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/vision-labs/internal/detection"
	"github.com/ironsheep/vision-labs/internal/imaging"
)

// FoodItem describes one dish: its colour bounds in YCbCr and the area its
// region is expected to have.
type FoodItem struct {
	Name string              `json:"name" yaml:"name"`
	YUV  imaging.YUVBounds   `json:"yuv" yaml:"yuv"`
	Area detection.AreaRange `json:"area" yaml:"area"`
}

// Catalog is the list of dishes searched for, in order.
type Catalog struct {
	Items []FoodItem `json:"items" yaml:"items"`
}

func item(name string, yMin, yMax, uMin, uMax, vMin, vMax float64, minArea, maxArea int) FoodItem {
	return FoodItem{
		Name: name,
		YUV: imaging.YUVBounds{
			YMin: yMin, YMax: yMax,
			UMin: uMin, UMax: uMax,
			VMin: vMin, VMax: vMax,
		},
		Area: detection.AreaRange{Min: minArea, Max: maxArea},
	}
}

// DefaultCatalog returns the canteen menu the bounds were tuned on.
// Juice 2 appears twice because its glass and its liquid differ in colour.
func DefaultCatalog() Catalog {
	return Catalog{Items: []FoodItem{
		item("Carrot", 81.71, 140.675, 100.03, 88.315, 174.03, 178.0, 290000, 400000),
		item("Light bread", 72.8, 116.19, 112.5850, 114.805, 142.945, 136.36, 180000, 250000),
		item("Soup", 102.935, 138.53, 100.155, 99.44, 142.88, 138.845, 200000, 800000),
		item("Tomato Juice", 44.122, 73.678, 116.752, 108.125, 161.364, 161.099, 96000, 120000),
		item("Cutlet", 56, 85, 110, 107, 152, 145, 50000, 100000),
		item("Puree", 140.938, 173.227, 94.586, 104.698, 145.856, 140.485, 180000, 270000),
		item("Juice 2", 37.98, 44.05, 122.77, 124.225, 155.825, 157.665, 40000, 200000),
		item("Juice 2", 21.742, 29.73, 125.188, 125.04, 136.341, 136.78, 40000, 200000),
		item("Juice 3", 84.435, 103.645, 93.495, 89.845, 162.635, 161.15, 40000, 200000),
		item("Apple juice", 34.164, 59.867, 119.017, 117.567, 143.565, 140.479, 50000, 100000),
		item("Bread", 102.081, 117.861, 109.073, 107.899, 143.513, 144.533, 40000, 150000),
	}}
}

// LoadCatalog reads a YAML catalogue file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog %q: %w", path, err)
	}
	return c, nil
}

// Validate checks that every item is named and has a usable area range.
func (c Catalog) Validate() error {
	if len(c.Items) == 0 {
		return fmt.Errorf("catalog has no items")
	}
	for i, it := range c.Items {
		if it.Name == "" {
			return fmt.Errorf("item %d has no name", i+1)
		}
		if it.Area.Min < 0 || (it.Area.Max != 0 && it.Area.Max < it.Area.Min) {
			return fmt.Errorf("item %q has invalid area range %d..%d", it.Name, it.Area.Min, it.Area.Max)
		}
	}
	return nil
}
