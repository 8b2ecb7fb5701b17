package labs

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ironsheep/vision-labs/internal/imaging"
)

// outputs writes files into one directory and remembers their paths.
type outputs struct {
	dir   string
	log   zerolog.Logger
	files []string
}

func newOutputs(dir string, log zerolog.Logger) (*outputs, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &outputs{dir: dir, log: log}, nil
}

func (o *outputs) path(name string) string {
	return filepath.Join(o.dir, name)
}

func (o *outputs) writeImage(name string, img image.Image) error {
	p := o.path(name)
	if err := imaging.Save(img, p); err != nil {
		return err
	}
	o.files = append(o.files, p)
	o.log.Debug().Str("path", p).Msg("saved image")
	return nil
}

func (o *outputs) writeJSON(name string, v interface{}) error {
	p := o.path(name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(p, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	o.files = append(o.files, p)
	o.log.Debug().Str("path", p).Msg("saved report")
	return nil
}

// list returns the written paths including any still to be written.
func (o *outputs) list(pending ...string) []string {
	out := make([]string, 0, len(o.files)+len(pending))
	out = append(out, o.files...)
	for _, name := range pending {
		out = append(out, o.path(name))
	}
	return out
}
