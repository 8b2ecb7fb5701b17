package labs

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ironsheep/vision-labs/internal/detection"
	"github.com/ironsheep/vision-labs/internal/imaging"
	"github.com/ironsheep/vision-labs/internal/morphology"
)

// DefaultBlobsInput is read when no input is given.
const DefaultBlobsInput = "input/phone.jpg"

// Output file names of the blobs pipeline.
const (
	BlobsGrayFile    = "rgb2gray.jpg"
	BlobsEdgesFile   = "canny.jpg"
	BlobsFilledFile  = "detected.jpg"
	BlobsLabelsFile  = "labels.png"
	BlobsObjectsFile = "objects.png"
	BlobsReportFile  = "blobs.json"
)

// BlobsOptions configures RunBlobs.
type BlobsOptions struct {
	Input     string
	OutputDir string

	Canny    imaging.CannyOptions
	Detector imaging.EdgeDetector

	// MinArea is the smallest region kept, inclusive.
	MinArea int
	// AlignThreshold is the largest gap between sorted centroid
	// coordinates that still counts as the same row or column.
	AlignThreshold float64

	Log zerolog.Logger
}

// DefaultBlobsOptions returns the tuned settings for the phone photo.
func DefaultBlobsOptions() BlobsOptions {
	return BlobsOptions{
		Input:          DefaultBlobsInput,
		OutputDir:      "output",
		Canny:          imaging.DefaultCannyOptions(),
		Detector:       imaging.NativeCanny{},
		MinArea:        150,
		AlignThreshold: 5,
		Log:            zerolog.Nop(),
	}
}

// Blob is one numbered object. Index starts at 1.
type Blob struct {
	Index int `json:"index"`
	detection.Region
}

// BlobsReport is the result of RunBlobs.
type BlobsReport struct {
	Input       string `json:"input"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EdgeBackend string `json:"edge_backend"`
	EdgePixels  int    `json:"edge_pixels"`

	Blobs []Blob `json:"blobs"`

	// Rows are runs of blobs sharing a y coordinate, Columns share x.
	Rows      []detection.Run           `json:"rows"`
	Columns   []detection.Run           `json:"columns"`
	Alignment detection.AlignmentResult `json:"alignment"`

	Outputs []string `json:"outputs"`
}

var (
	blobBoxColor  = color.RGBA{255, 255, 255, 255}
	blobTextColor = color.RGBA{255, 0, 0, 255}
	blobMarker    = imaging.MarkerStyle{Color: blobBoxColor, Shape: imaging.MarkerSquare}
)

// RunBlobs finds objects in the input photo by their Canny outline.
func RunBlobs(opts BlobsOptions) (*BlobsReport, error) {
	log := opts.Log
	if opts.Detector == nil {
		opts.Detector = imaging.NativeCanny{}
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
	log.Info().Str("input", opts.Input).Int("width", bounds.Dx()).Int("height", bounds.Dy()).Msg("loaded image")

	if err := out.writeImage(BlobsGrayFile, imaging.GrayPlane(img).ToGray()); err != nil {
		return nil, err
	}

	edges, err := opts.Detector.Detect(img, opts.Canny)
	if err != nil {
		return nil, fmt.Errorf("failed to detect edges: %w", err)
	}
	log.Debug().Str("backend", opts.Detector.Name()).Int("edge_pixels", edges.Count()).Msg("detected edges")
	if err := out.writeImage(BlobsEdgesFile, edges.ToGray()); err != nil {
		return nil, err
	}

	filled := morphology.FillHoles(edges)
	if err := out.writeImage(BlobsFilledFile, filled.ToGray()); err != nil {
		return nil, err
	}

	labels := detection.Label(filled, detection.Eight)
	if err := out.writeImage(BlobsLabelsFile, imaging.LabelOverlay(labels)); err != nil {
		return nil, err
	}
	log.Debug().Int("labels", labels.Count).Msg("labelled filled outlines")

	regions := detection.FilterByArea(detection.Regions(labels), detection.AreaRange{Min: opts.MinArea})

	report := &BlobsReport{
		Input:       opts.Input,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		EdgeBackend: opts.Detector.Name(),
		EdgePixels:  edges.Count(),
		Blobs:       make([]Blob, 0, len(regions)),
	}

	canvas := imaging.NewCanvas(edges.ToGray())
	var ys, xs []detection.AxisValue
	var centroids []detection.Centroid
	for i, reg := range regions {
		b := Blob{Index: i + 1, Region: reg}
		report.Blobs = append(report.Blobs, b)

		ys = append(ys, detection.AxisValue{Index: b.Index, Value: reg.Centroid.Y})
		xs = append(xs, detection.AxisValue{Index: b.Index, Value: reg.Centroid.X})
		centroids = append(centroids, reg.Centroid)

		c := reg.Centroid.Point()
		canvas.StrokeRect(reg.Bounds, blobBoxColor, 2)
		canvas.Marker(c, blobMarker, 6)
		canvas.TextInside(c, strconv.Itoa(b.Index), blobTextColor)

		log.Info().Msgf("[%d] x0: %g y0: %g", b.Index, reg.Centroid.X, reg.Centroid.Y)
	}

	report.Rows = detection.FindAlignedRuns(ys, detection.AxisY, opts.AlignThreshold)
	report.Columns = detection.FindAlignedRuns(xs, detection.AxisX, opts.AlignThreshold)
	report.Alignment = detection.CheckAlignment(centroids, opts.AlignThreshold)
	logRuns(log, report.Rows)
	logRuns(log, report.Columns)

	if err := out.writeImage(BlobsObjectsFile, canvas.Image()); err != nil {
		return nil, err
	}
	report.Outputs = out.list(BlobsReportFile)
	if err := out.writeJSON(BlobsReportFile, report); err != nil {
		return nil, err
	}

	log.Info().Int("blobs", len(report.Blobs)).Int("rows", len(report.Rows)).Int("columns", len(report.Columns)).Msg("blobs done")
	return report, nil
}

func logRuns(log zerolog.Logger, runs []detection.Run) {
	for _, run := range runs {
		log.Info().Msgf("the following points on axis %s lie approximately on one line:", run.Axis)
		for _, m := range run.Members {
			log.Info().Msgf("[%d] %g", m.Index, m.Value)
		}
	}
}
