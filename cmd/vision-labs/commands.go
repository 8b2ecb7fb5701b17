package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ironsheep/vision-labs/internal/config"
	"github.com/ironsheep/vision-labs/internal/haar"
	"github.com/ironsheep/vision-labs/internal/imaging"
	"github.com/ironsheep/vision-labs/internal/labs"
)

// cliOptions holds the parsed command-line flags. Empty or zero values
// mean "not given".
type cliOptions struct {
	flags *pflag.FlagSet

	Input       string
	Output      string
	LogLevel    string
	LogFormat   string
	EdgeBackend string

	MinArea int
	Sigma   float64

	Catalog string
	Batch   string

	Variant  string
	Searches []string
	Votes    int

	X, Y int
}

func parseFlags(name string, args []string, stderr io.Writer) (*cliOptions, error) {
	o := &cliOptions{}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	o.flags = fs

	fs.StringVarP(&o.Input, "input", "i", "", "input image (default: the lab's photo under the input directory)")
	fs.StringVarP(&o.Output, "output", "o", "", "output directory")
	fs.StringVar(&o.LogLevel, "log-level", "", "trace, debug, info, warn or error")
	fs.StringVar(&o.LogFormat, "log-format", "", "console or json")
	fs.StringVar(&o.EdgeBackend, "edge-backend", "", "Canny backend: native or gocv")

	switch name {
	case "blobs":
		fs.IntVar(&o.MinArea, "min-area", 0, "smallest object area in pixels (default 150)")
		fs.Float64Var(&o.Sigma, "sigma", 0, "Canny smoothing sigma (default 2.9)")
	case "food":
		fs.StringVar(&o.Catalog, "catalog", "", "YAML catalogue of menu items")
		fs.StringVar(&o.Batch, "batch", "", "glob of images to process instead of --input")
	case "haar":
		fs.StringVar(&o.Variant, "variant", "", "result drawing: marker or primitive")
		fs.StringArrayVar(&o.Searches, "search", nil, "search as name[:low:high[:marker[:size]]], repeatable")
		fs.IntVar(&o.Votes, "votes", 0, "exact hit count a centre needs to be painted (default 1)")
	case "sample":
		fs.IntVar(&o.X, "x", 0, "pixel column")
		fs.IntVar(&o.Y, "y", 0, "pixel row")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

// apply lays the flags over the environment configuration.
func (o *cliOptions) apply(cfg *config.Config) error {
	if o.Output != "" {
		cfg.OutputDir = o.Output
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	if o.EdgeBackend != "" {
		cfg.EdgeBackend = o.EdgeBackend
	}
	return cfg.Validate()
}

// input returns --input, or the lab default resolved against the input
// directory.
func (o *cliOptions) input(cfg *config.Config, fallback string) string {
	if o.Input != "" {
		return o.Input
	}
	return cfg.InputPath(fallback)
}

func runBlobs(cfg *config.Config, o *cliOptions, log zerolog.Logger, _ io.Writer) error {
	opts := labs.DefaultBlobsOptions()
	opts.Input = o.input(cfg, labs.DefaultBlobsInput)
	opts.OutputDir = cfg.OutputDir
	opts.Log = log
	if o.MinArea > 0 {
		opts.MinArea = o.MinArea
	}
	if o.flags.Changed("sigma") {
		opts.Canny.Sigma = o.Sigma
	}

	detector, err := imaging.NewEdgeDetector(cfg.EdgeBackend)
	if err != nil {
		return err
	}
	opts.Detector = detector

	_, err = labs.RunBlobs(opts)
	return err
}

func runFood(cfg *config.Config, o *cliOptions, log zerolog.Logger, _ io.Writer) error {
	opts := labs.DefaultFoodOptions()
	opts.Input = o.input(cfg, labs.DefaultFoodInput)
	opts.OutputDir = cfg.OutputDir
	opts.Log = log
	if o.Catalog != "" {
		c, err := labs.LoadCatalog(o.Catalog)
		if err != nil {
			return err
		}
		opts.Catalog = c
	}

	if o.Batch != "" {
		_, err := labs.RunFoodBatch(opts, o.Batch)
		return err
	}
	_, err := labs.RunFood(opts)
	return err
}

func runHaar(cfg *config.Config, o *cliOptions, log zerolog.Logger, _ io.Writer) error {
	opts := labs.DefaultHaarOptions()
	opts.Input = o.input(cfg, labs.DefaultHaarInput)
	opts.OutputDir = cfg.OutputDir
	opts.Log = log

	variant, err := labs.ParseVariant(o.Variant)
	if err != nil {
		return err
	}
	opts.Variant = variant
	if o.Votes > 0 {
		opts.Votes = o.Votes
	}
	if len(o.Searches) > 0 {
		opts.Searches = nil
		for _, spec := range o.Searches {
			s, err := haar.ParseSearch(spec)
			if err != nil {
				return err
			}
			opts.Searches = append(opts.Searches, s)
		}
	}

	_, err = labs.RunHaar(opts)
	return err
}

func runSample(_ *config.Config, o *cliOptions, _ zerolog.Logger, stdout io.Writer) error {
	if o.Input == "" {
		return fmt.Errorf("sample needs --input")
	}
	img, err := imaging.Load(o.Input)
	if err != nil {
		return err
	}
	res, err := imaging.SampleColor(img, o.X, o.Y)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
