package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ironsheep/phonefinder/internal/detection"
	"github.com/ironsheep/phonefinder/internal/imaging"
	"github.com/ironsheep/phonefinder/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	msgInputNotFound = "Input image cannot be found"
	msgPhoneNotFound = "Sorry could not find the co-ordinates of the center of the phone"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds the parsed command line.
type options struct {
	configPath  string
	workers     int
	maxDim      int
	debugDir    string
	markerColor string
	format      string
	logLevel    string
	imagePath   string
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "phonefinder - locate a phone in a photograph")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: phonefinder [options] <image>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prints the normalized phone centre as \"<col/width> <row/height>\".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Enable debug logging\n", logging.EnvLevel)
}

func parseArgs(args []string) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("phonefinder", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.configPath, "config", "", "YAML file overriding detection thresholds")
	fs.IntVar(&opts.workers, "workers", 0, "binarization goroutines (0 = one per CPU; overrides config)")
	fs.IntVar(&opts.maxDim, "max-dim", 0, "downscale so the longest side is at most N pixels (0 = off)")
	fs.StringVar(&opts.debugDir, "debug-dir", "", "write binary.png and overlay.png to this directory")
	fs.StringVar(&opts.markerColor, "marker-color", imaging.DefaultMarkerColor, "overlay marker colour (#RRGGBB)")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if fs.NArg() != 1 {
		return nil, fs, fmt.Errorf("expected exactly one image path, got %d", fs.NArg())
	}
	if opts.format != "text" && opts.format != "json" {
		return nil, fs, fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.workers < 0 || opts.maxDim < 0 {
		return nil, fs, fmt.Errorf("-workers and -max-dim must not be negative")
	}
	opts.imagePath = fs.Arg(0)
	return opts, fs, nil
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Handle --version and --help before flag parsing
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "phonefinder %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		}
	}

	opts, fs, err := parseArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		usage(stdout, fs)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "phonefinder: %v\n\n", err)
		usage(stderr, fs)
		return 2
	}

	if err := logging.Setup(stderr, opts.logLevel); err != nil {
		fmt.Fprintf(stderr, "phonefinder: %v\n", err)
		return 2
	}

	params := detection.DefaultParams()
	if opts.configPath != "" {
		params, err = detection.LoadParams(opts.configPath)
		if err != nil {
			log.Error().Err(err).Str("path", opts.configPath).Msg("Failed to load config")
			return 2
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "workers" {
			params.Workers = opts.workers
		}
	})

	finder, err := detection.NewFinder(params)
	if err != nil {
		log.Error().Err(err).Msg("Invalid detection parameters")
		return 2
	}

	raster, info, err := imaging.LoadRaster(opts.imagePath, opts.maxDim)
	if err != nil {
		log.Debug().Err(err).Msg("Image load failed")
		fmt.Fprintln(stdout, msgInputNotFound)
		return 0
	}
	log.Debug().
		Str("path", opts.imagePath).
		Str("format", info.Format).
		Int("width", info.Width).
		Int("height", info.Height).
		Int64("bytes", info.FileSizeBytes).
		Msg("Image loaded")

	res, stages, err := finder.FindWithStages(ctx, raster)

	if opts.debugDir != "" {
		if derr := writeDebug(opts, raster, stages, res); derr != nil {
			log.Warn().Err(derr).Str("dir", opts.debugDir).Msg("Failed to write debug images")
		}
	}

	switch {
	case errors.Is(err, detection.ErrNotFound):
		fmt.Fprintln(stdout, msgPhoneNotFound)
		return 0
	case err != nil:
		log.Error().Err(err).Msg("Detection failed")
		return 1
	}

	if err := printResult(stdout, opts.format, res); err != nil {
		log.Error().Err(err).Msg("Failed to write result")
		return 1
	}
	return 0
}

// jsonResult is the -format json payload. X is row/height and Y is
// col/width, as in detection.Result.
type jsonResult struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Row        float64 `json:"row"`
	Col        float64 `json:"col"`
	Score      int     `json:"score"`
	Candidates int     `json:"candidates"`
}

// printResult writes the result. The text form is "<col/width> <row/height>".
func printResult(w io.Writer, format string, res *detection.Result) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(jsonResult{
			X:          res.X,
			Y:          res.Y,
			Row:        res.Midpoint.Row,
			Col:        res.Midpoint.Col,
			Score:      res.Anchor.Score,
			Candidates: res.Candidates,
		})
	}
	_, err := fmt.Fprintf(w, "%.4f %.4f\n", res.Y, res.X)
	return err
}

// writeDebug renders the binary map and an overlay marking every scored
// candidate and the final midpoint.
func writeDebug(opts *options, raster *imaging.Raster, stages *detection.Stages, res *detection.Result) error {
	if stages == nil || stages.Binary == nil {
		return nil
	}
	if err := imaging.SavePNG(filepath.Join(opts.debugDir, "binary.png"), stages.Binary.Image()); err != nil {
		return err
	}

	marker, err := imaging.ParseColor(opts.markerColor)
	if err != nil {
		return err
	}
	candidate, _ := imaging.ParseColor("#00C8FF")

	var markers []imaging.Marker
	for _, s := range stages.Scored {
		markers = append(markers, imaging.Marker{
			Row: s.Row, Col: s.Col, Size: 3 + s.Score, Shape: imaging.Box, Color: candidate,
		})
	}
	if res != nil {
		markers = append(markers, imaging.Marker{
			Row:   int(res.Midpoint.Row + 0.5),
			Col:   int(res.Midpoint.Col + 0.5),
			Size:  10,
			Shape: imaging.Crosshair,
			Color: marker,
		})
	}

	return imaging.SavePNG(filepath.Join(opts.debugDir, "overlay.png"), imaging.Overlay(raster, markers))
}
