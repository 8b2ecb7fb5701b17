package labs

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ironsheep/vision-labs/internal/detection"
	"github.com/ironsheep/vision-labs/internal/haar"
	"github.com/ironsheep/vision-labs/internal/imaging"
	"github.com/ironsheep/vision-labs/internal/morphology"
)

// DefaultHaarInput is read when no input is given.
const DefaultHaarInput = "pool/009_half.jpg"

// Output file names of the haar pipeline.
const (
	HaarGrayFile     = "rgb2gray.jpg"
	HaarDilationFile = "dilation.jpg"
	HaarClosingFile  = "closing.jpg"
	HaarResultFile   = "result.png"
	HaarReportFile   = "haar.json"
)

// Variant selects how hits are drawn on the result image.
type Variant string

const (
	// VariantMarker draws each search's marker at the hit centre.
	VariantMarker Variant = "marker"
	// VariantPrimitive draws the primitive pattern over the hit window.
	VariantPrimitive Variant = "primitive"
)

// ParseVariant accepts "marker" or "primitive"; empty means marker.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantMarker:
		return VariantMarker, nil
	case VariantPrimitive:
		return VariantPrimitive, nil
	default:
		return "", fmt.Errorf("unknown haar variant: %s (want marker or primitive)", s)
	}
}

// HaarOptions configures RunHaar.
type HaarOptions struct {
	Input     string
	OutputDir string

	Searches []haar.Search
	Scan     haar.ScanOptions
	Variant  Variant

	// Votes is the exact number of hits a centre needs to be painted.
	Votes int
	// Radius is the radius of the painted disks and of the disk element
	// used for dilation and closing.
	Radius int
	// Area bounds the boxed regions.
	Area detection.AreaRange

	Log zerolog.Logger
}

// DefaultHaarOptions returns the tuned settings for the pool photo.
func DefaultHaarOptions() HaarOptions {
	return HaarOptions{
		Input:     DefaultHaarInput,
		OutputDir: "output",
		Searches:  haar.DefaultSearches(),
		Scan:      haar.DefaultScanOptions(),
		Variant:   VariantMarker,
		Votes:     1,
		Radius:    7,
		Area:      detection.AreaRange{Min: 2000, Max: 70000, Exclusive: true},
		Log:       zerolog.Nop(),
	}
}

// HaarScan is the per-search part of the report. Hits are summarised by
// count to keep the report small.
type HaarScan struct {
	Search  string  `json:"search"`
	Windows int     `json:"windows"`
	Hits    int     `json:"hits"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

// HaarReport is the result of RunHaar.
type HaarReport struct {
	Input   string             `json:"input"`
	Width   int                `json:"width"`
	Height  int                `json:"height"`
	Variant Variant            `json:"variant"`
	Scans   []HaarScan         `json:"scans"`
	Painted int                `json:"painted"`
	Regions []detection.Region `json:"regions"`
	Outputs []string           `json:"outputs"`
}

// Marker level and annotation colours.
var (
	voteColor     = color.RGBA{255, 255, 255, 255}
	haarOnColor   = color.RGBA{0, 0, 255, 255}
	haarOffColor  = color.RGBA{255, 255, 255, 255}
	haarTextColor = color.RGBA{255, 0, 0, 255}
	haarBoxColor  = color.RGBA{255, 0, 0, 255}
	voteGrayLevel = uint8(255)
)

// RunHaar searches the input photo with Haar primitives and boxes the
// regions formed by the voted centres.
func RunHaar(opts HaarOptions) (*HaarReport, error) {
	log := opts.Log
	if len(opts.Searches) == 0 {
		opts.Searches = haar.DefaultSearches()
	}
	if opts.Variant == "" {
		opts.Variant = VariantMarker
	}
	if opts.Radius < 1 {
		opts.Radius = 7
	}

	img, err := imaging.Load(opts.Input)
	if err != nil {
		return nil, err
	}
	out, err := newOutputs(opts.OutputDir, log)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()

	plane := imaging.GrayPlane(img)
	votes := haar.NewVotes()
	results := make([]*haar.ScanResult, 0, len(opts.Searches))

	report := &HaarReport{
		Input:   opts.Input,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Variant: opts.Variant,
	}

	for _, s := range opts.Searches {
		log.Info().Msgf("%s - %s", s.Primitive.Name, s.Marker)
		res := haar.Scan(plane, s, opts.Scan)
		votes.Add(res.Hits)
		results = append(results, res)

		log.Info().Msgf("max: %g", res.Max)
		log.Info().Msgf("min: %g", res.Min)
		log.Info().Msgf("amount: %d", res.Count())
		report.Scans = append(report.Scans, HaarScan{
			Search:  s.String(),
			Windows: res.Windows,
			Hits:    res.Count(),
			Max:     res.Max,
			Min:     res.Min,
		})
	}

	// The disks are painted into the colour image, which is also the
	// background of the annotated result.
	painted := imaging.NewCanvas(img)
	report.Painted = haar.PaintVotes(painted, votes, opts.Votes, opts.Radius, voteColor)
	log.Debug().Int("painted", report.Painted).Int("centres", votes.Len()).Msg("painted voted centres")

	gray := imaging.GrayPlane(painted.Image()).ToGray()
	if err := out.writeImage(HaarGrayFile, gray); err != nil {
		return nil, err
	}

	se := morphology.Disk(opts.Radius)
	dilated := morphology.DilateGray(gray, se)
	if err := out.writeImage(HaarDilationFile, dilated); err != nil {
		return nil, err
	}
	closed := morphology.CloseGray(dilated, se)
	if err := out.writeImage(HaarClosingFile, closed); err != nil {
		return nil, err
	}

	mask := morphology.MaskFromGray(closed, voteGrayLevel)
	report.Regions = detection.FilterByArea(detection.Regions(detection.Label(mask, detection.Eight)), opts.Area)

	canvas := imaging.NewCanvas(painted.Image())
	for i, res := range results {
		s := opts.Searches[i]
		for _, h := range res.Hits {
			if opts.Variant == VariantPrimitive {
				canvas.Pattern(h.Origin, s.Primitive.Rows(), haarOnColor, haarOffColor)
			} else {
				canvas.Marker(h.Center, s.Marker, s.MarkerSize)
			}
			canvas.TextInside(h.Center, h.Label(), haarTextColor)
		}
	}
	for _, reg := range report.Regions {
		canvas.StrokeRect(reg.Bounds, haarBoxColor, 1)
		canvas.TextInside(reg.Centroid.Point(), strconv.Itoa(reg.Area), haarTextColor)
	}

	if err := out.writeImage(HaarResultFile, canvas.Image()); err != nil {
		return nil, err
	}
	report.Outputs = out.list(HaarReportFile)
	if err := out.writeJSON(HaarReportFile, report); err != nil {
		return nil, err
	}

	log.Info().Int("regions", len(report.Regions)).Msg("haar done")
	return report, nil
}
