// Package config loads runtime settings from the environment.
//
// Values come from, in increasing priority: built-in defaults, a .env file
// in the working directory, and VISION_LABS_* environment variables.
// Command-line flags are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvInputDir    = "VISION_LABS_INPUT_DIR"
	EnvOutputDir   = "VISION_LABS_OUTPUT_DIR"
	EnvLogLevel    = "VISION_LABS_LOG_LEVEL"
	EnvLogFormat   = "VISION_LABS_LOG_FORMAT"
	EnvEdgeBackend = "VISION_LABS_EDGE_BACKEND"
)

// Config holds the settings shared by every command.
type Config struct {
	// InputDir is the base the default input paths are resolved against.
	InputDir string
	// OutputDir receives every image and report a pipeline writes.
	OutputDir string

	LogLevel  string // trace, debug, info, warn, error
	LogFormat string // console or json

	// EdgeBackend selects the Canny implementation: native or gocv.
	EdgeBackend string
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		InputDir:    ".",
		OutputDir:   "output",
		LogLevel:    "info",
		LogFormat:   "console",
		EdgeBackend: "native",
	}
}

// Load reads .env (a missing file is not an error) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.InputDir = getenv(EnvInputDir, cfg.InputDir)
	cfg.OutputDir = getenv(EnvOutputDir, cfg.OutputDir)
	cfg.LogLevel = strings.ToLower(getenv(EnvLogLevel, cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getenv(EnvLogFormat, cfg.LogFormat))
	cfg.EdgeBackend = strings.ToLower(getenv(EnvEdgeBackend, cfg.EdgeBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid %s %q: want console or json", EnvLogFormat, c.LogFormat)
	}
	switch c.EdgeBackend {
	case "native", "gocv":
	default:
		return fmt.Errorf("invalid %s %q: want native or gocv", EnvEdgeBackend, c.EdgeBackend)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// InputPath resolves a default input path against InputDir. Absolute
// paths are returned unchanged.
func (c *Config) InputPath(rel string) string {
	if filepath.IsAbs(rel) || c.InputDir == "" {
		return rel
	}
	return filepath.Join(c.InputDir, rel)
}

// OutputPath joins name onto OutputDir.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
