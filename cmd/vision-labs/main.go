package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ironsheep/vision-labs/internal/config"
	"github.com/ironsheep/vision-labs/internal/logger"
	"github.com/ironsheep/vision-labs/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before anything touches the environment
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("vision-labs %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "vision-labs - classical computer vision labs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: vision-labs <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  blobs     Number the objects outlined by Canny edges")
	fmt.Fprintln(w, "  food      Box menu items by YUV color range")
	fmt.Fprintln(w, "  haar      Search for Haar primitives with a sliding window")
	fmt.Fprintln(w, "  sample    Print the color of one pixel (--x, --y)")
	fmt.Fprintln(w, "  serve     Run the MCP server on stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'vision-labs <command> --help' for command flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (a .env file is read too):")
	fmt.Fprintf(w, "  %s    Base directory of default inputs\n", config.EnvInputDir)
	fmt.Fprintf(w, "  %s   Directory for result files\n", config.EnvOutputDir)
	fmt.Fprintf(w, "  %s    trace, debug, info, warn, error\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %s   console or json\n", config.EnvLogFormat)
	fmt.Fprintf(w, "  %s native or gocv\n", config.EnvEdgeBackend)
}

// run executes one command. Errors are logged before they are returned.
func run(name string, args []string, stdout, stderr io.Writer) error {
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", name)
	}

	opts, err := parseFlags(name, args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	if err := opts.apply(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	log, err := logger.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	log = logger.Component(log, name)

	if err := cmd(cfg, opts, log, stdout); err != nil {
		log.Error().Err(err).Msg(name + " failed")
		return err
	}
	return nil
}

type command func(cfg *config.Config, opts *cliOptions, log zerolog.Logger, stdout io.Writer) error

var commands = map[string]command{
	"blobs":  runBlobs,
	"food":   runFood,
	"haar":   runHaar,
	"sample": runSample,
	"serve":  runServe,
}

func runServe(cfg *config.Config, _ *cliOptions, log zerolog.Logger, _ io.Writer) error {
	log.Debug().Str("version", Version).Str("commit", GitCommit).Msg("starting MCP server")
	// stdout is reserved for the protocol; logs go to stderr.
	return server.New(cfg, log, Version).Run()
}
