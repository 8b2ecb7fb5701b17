package labs

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ironsheep/vision-labs/internal/detection"
	"github.com/ironsheep/vision-labs/internal/imaging"
	"github.com/ironsheep/vision-labs/internal/morphology"
)

// DefaultFoodInput is read when no input is given.
const DefaultFoodInput = "input/Меню (51).JPG"

// Output file names of the food pipeline.
const (
	FoodResultFile = "food.png"
	FoodReportFile = "food.json"
	FoodBatchFile  = "food-batch.json"
)

// Cleanup steps recorded in FoodItemResult.Cleanup.
const (
	StepFillHoles = "fill_holes"
	StepDilation  = "dilation"
	StepClosing   = "closing"
)

// FoodOptions configures RunFood and RunFoodBatch.
type FoodOptions struct {
	Input     string
	OutputDir string
	Catalog   Catalog

	// Kernel is the side of the square element used for dilation and
	// closing.
	Kernel int

	Log zerolog.Logger
}

// DefaultFoodOptions returns the settings for the canteen menu photo.
func DefaultFoodOptions() FoodOptions {
	return FoodOptions{
		Input:     DefaultFoodInput,
		OutputDir: "output",
		Catalog:   DefaultCatalog(),
		Kernel:    10,
		Log:       zerolog.Nop(),
	}
}

// FoodItemResult is the outcome for one catalogue item.
type FoodItemResult struct {
	Name    string             `json:"name"`
	Range   imaging.ColorRange `json:"rgb_range"`
	Cleanup []string           `json:"cleanup"`
	Matches []detection.Region `json:"matches"`
}

// FoodReport is the result of RunFood for one image.
type FoodReport struct {
	Input      string           `json:"input"`
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	Items      []FoodItemResult `json:"items"`
	Detections int              `json:"detections"`
	Outputs    []string         `json:"outputs,omitempty"`
}

var (
	foodBoxColor  = color.RGBA{0, 0, 255, 255}
	foodTextColor = color.RGBA{0, 0, 0, 255}
)

// DetectFood segments one catalogue item in img.
//
// The colour mask is hole-filled first. If no region has an area in the
// item's range, the mask is dilated and filled again; if that still fails,
// it is closed and filled. Regions of the final mask whose area is in
// range are returned.
func DetectFood(img image.Image, it FoodItem, kernel int, log zerolog.Logger) FoodItemResult {
	log.Info().Str("item", it.Name).Msg("search")

	res := FoodItemResult{Name: it.Name, Range: imaging.RangeFromYUV(it.YUV)}
	se := morphology.Square(kernel)

	mask := morphology.FillHoles(imaging.ColorMask(img, res.Range))
	res.Cleanup = append(res.Cleanup, StepFillHoles)

	if !detection.HasAreaInRange(mask, it.Area) {
		log.Debug().Str("item", it.Name).Stringer("element", se).Msg("dilation")
		mask = morphology.FillHoles(morphology.Dilate(mask, se))
		res.Cleanup = append(res.Cleanup, StepDilation)
	}
	if !detection.HasAreaInRange(mask, it.Area) {
		log.Debug().Str("item", it.Name).Stringer("element", se).Msg("closing")
		mask = morphology.FillHoles(morphology.Close(mask, se))
		res.Cleanup = append(res.Cleanup, StepClosing)
	}

	res.Matches = detection.FilterByArea(detection.Regions(detection.Label(mask, detection.Eight)), it.Area)
	return res
}

// annotateFood draws every match of every item onto a copy of img.
func annotateFood(img image.Image, items []FoodItemResult) *image.RGBA {
	canvas := imaging.NewCanvas(img)
	for _, it := range items {
		for _, m := range it.Matches {
			canvas.StrokeRect(m.Bounds, foodBoxColor, 2)
			canvas.TextInside(m.Centroid.Point(), it.Name+"\n"+strconv.Itoa(m.Area), foodTextColor)
		}
	}
	return canvas.Image()
}

func detectAll(img image.Image, opts FoodOptions) *FoodReport {
	b := img.Bounds()
	report := &FoodReport{Width: b.Dx(), Height: b.Dy()}
	for _, it := range opts.Catalog.Items {
		res := DetectFood(img, it, opts.Kernel, opts.Log)
		report.Items = append(report.Items, res)
		report.Detections += len(res.Matches)
	}
	return report
}

func (o *FoodOptions) setDefaults() error {
	if len(o.Catalog.Items) == 0 {
		o.Catalog = DefaultCatalog()
	}
	if o.Kernel < 1 {
		o.Kernel = 10
	}
	return o.Catalog.Validate()
}

// RunFood detects every catalogue item in the input photo.
func RunFood(opts FoodOptions) (*FoodReport, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}

	img, err := imaging.Load(opts.Input)
	if err != nil {
		return nil, err
	}
	out, err := newOutputs(opts.OutputDir, opts.Log)
	if err != nil {
		return nil, err
	}

	report := detectAll(img, opts)
	report.Input = opts.Input

	if err := out.writeImage(FoodResultFile, annotateFood(img, report.Items)); err != nil {
		return nil, err
	}
	report.Outputs = out.list(FoodReportFile)
	if err := out.writeJSON(FoodReportFile, report); err != nil {
		return nil, err
	}

	opts.Log.Info().Int("detections", report.Detections).Msg("food done")
	return report, nil
}

// RunFoodBatch runs the food pipeline over every file matching pattern,
// in lexical order, saving the i-th annotated image as "<i>-result.png".
// opts.Input is ignored.
func RunFoodBatch(opts FoodOptions, pattern string) ([]*FoodReport, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid batch pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images match %q", pattern)
	}
	sort.Strings(paths)

	out, err := newOutputs(opts.OutputDir, opts.Log)
	if err != nil {
		return nil, err
	}

	reports := make([]*FoodReport, 0, len(paths))
	for i, p := range paths {
		img, err := imaging.Load(p)
		if err != nil {
			return nil, err
		}
		report := detectAll(img, opts)
		report.Input = p

		name := strconv.Itoa(i+1) + "-result.png"
		if err := out.writeImage(name, annotateFood(img, report.Items)); err != nil {
			return nil, err
		}
		report.Outputs = []string{out.path(name)}
		reports = append(reports, report)

		opts.Log.Info().Str("input", p).Int("detections", report.Detections).Msg("processed")
	}

	if err := out.writeJSON(FoodBatchFile, reports); err != nil {
		return nil, err
	}
	return reports, nil
}
