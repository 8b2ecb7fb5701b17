package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/vision-labs/internal/config"
	"github.com/ironsheep/vision-labs/internal/imaging"
	"github.com/ironsheep/vision-labs/internal/labs"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			img.Set(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	img.Set(5, 5, color.RGBA{255, 0, 0, 255})
	p := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, imaging.Save(img, p))
	return p
}

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	o, err := parseFlags("haar", []string{
		"--input", "a.jpg",
		"--search", "haar10",
		"--search", "haar12:31:33:ro:4",
		"--votes", "2",
		"--variant", "primitive",
	}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", o.Input)
	assert.Equal(t, []string{"haar10", "haar12:31:33:ro:4"}, o.Searches)
	assert.Equal(t, 2, o.Votes)
	assert.Equal(t, "primitive", o.Variant)
}

func TestParseFlags_CommandSpecific(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags("blobs", []string{"--votes", "2"}, &stderr)
	assert.Error(t, err)

	_, err = parseFlags("food", []string{"extra"}, &stderr)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	cfg := config.Default()
	o := &cliOptions{Output: "out", LogLevel: "debug", EdgeBackend: "gocv"}
	require.NoError(t, o.apply(cfg))
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "gocv", cfg.EdgeBackend)

	bad := &cliOptions{EdgeBackend: "magic"}
	assert.Error(t, bad.apply(config.Default()))
}

func TestInput(t *testing.T) {
	cfg := config.Default()
	cfg.InputDir = "/data"

	assert.Equal(t, filepath.Join("/data", labs.DefaultHaarInput), (&cliOptions{}).input(cfg, labs.DefaultHaarInput))
	assert.Equal(t, "x.png", (&cliOptions{Input: "x.png"}).input(cfg, labs.DefaultHaarInput))
}

func TestRun_Sample(t *testing.T) {
	t.Setenv(config.EnvOutputDir, t.TempDir())
	p := writeTestImage(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run("sample", []string{"--input", p, "--x", "5", "--y", "5"}, &stdout, &stderr))

	var res imaging.ColorResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, "#ff0000", res.Hex)
}

func TestRun_Haar(t *testing.T) {
	t.Setenv(config.EnvOutputDir, t.TempDir())
	p := writeTestImage(t)
	out := filepath.Join(t.TempDir(), "out")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run("haar", []string{"-i", p, "-o", out, "--search", "haar11"}, &stdout, &stderr))
	assert.FileExists(t, filepath.Join(out, labs.HaarReportFile))
}

func TestRun_Errors(t *testing.T) {
	t.Setenv(config.EnvOutputDir, t.TempDir())

	tests := []struct {
		name string
		cmd  string
		args []string
	}{
		{"unknown command", "sharpen", nil},
		{"missing input", "blobs", []string{"--input", "/nonexistent/phone.jpg", "-o", t.TempDir()}},
		{"sample without input", "sample", nil},
		{"bad search", "haar", []string{"--search", "haar99"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, run(tt.cmd, tt.args, &stdout, &stderr))
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.NoError(t, run("food", []string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--catalog")
}
