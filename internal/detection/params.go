package detection

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"gopkg.in/yaml.v3"
)

// TextureMode selects how the vertical term of the texture metric is
// computed.
type TextureMode string

const (
	// TextureCompat reproduces the historical metric: the "vertical" term
	// sums consecutive differences over the row-major flattening of the
	// first k window rows, for every k < window size. The thresholds were
	// tuned against this behaviour.
	TextureCompat TextureMode = "compat"

	// TextureGradient replaces the vertical term with a plain sum of
	// absolute differences between vertically adjacent pixels.
	TextureGradient TextureMode = "gradient"
)

// Params holds the tunable thresholds of the detector.
//
// The zero value is not usable; start from DefaultParams and override.
type Params struct {
	// TextureThreshold: windows with texture below this are smooth enough
	// to be phone candidates.
	TextureThreshold float64 `yaml:"texture_threshold"`

	// IntensityThreshold: centre pixels darker than this are candidates.
	IntensityThreshold float64 `yaml:"intensity_threshold"`

	// WindowSize is the odd side length of the sliding window.
	WindowSize int `yaml:"window_size"`

	// TextureMode picks the texture formula; see TextureCompat.
	TextureMode TextureMode `yaml:"texture_mode"`

	// Components with MinComponentSize < size < MaxComponentSize are kept.
	MinComponentSize int `yaml:"min_component_size"`
	MaxComponentSize int `yaml:"max_component_size"`

	// WhitePatchThreshold: a probed pixel whose channel mean exceeds this
	// counts as bright surroundings.
	WhitePatchThreshold float64 `yaml:"white_patch_threshold"`

	// ProbeLength is the number of pixels examined per direction.
	ProbeLength int `yaml:"probe_length"`

	// Workers bounds the binarizer goroutines. Zero means one per logical
	// CPU.
	Workers int `yaml:"workers"`
}

// DefaultParams returns the hand-tuned defaults.
func DefaultParams() Params {
	return Params{
		TextureThreshold:    5,
		IntensityThreshold:  80,
		WindowSize:          5,
		TextureMode:         TextureCompat,
		MinComponentSize:    50,
		MaxComponentSize:    500,
		WhitePatchThreshold: 120,
		ProbeLength:         20,
		Workers:             0,
	}
}

// Validate reports the first invalid field.
func (p Params) Validate() error {
	if p.WindowSize < 3 || p.WindowSize%2 == 0 {
		return fmt.Errorf("window_size must be an odd number >= 3, got %d", p.WindowSize)
	}
	switch p.TextureMode {
	case TextureCompat, TextureGradient:
	default:
		return fmt.Errorf("unknown texture_mode %q", p.TextureMode)
	}
	if p.MinComponentSize < 0 {
		return fmt.Errorf("min_component_size must not be negative, got %d", p.MinComponentSize)
	}
	if p.MaxComponentSize <= p.MinComponentSize {
		return fmt.Errorf("max_component_size (%d) must exceed min_component_size (%d)",
			p.MaxComponentSize, p.MinComponentSize)
	}
	if p.ProbeLength < 1 {
		return fmt.Errorf("probe_length must be positive, got %d", p.ProbeLength)
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", p.Workers)
	}
	return nil
}

// LoadParams reads a YAML file on top of DefaultParams.
//
// Keys absent from the file keep their defaults; unknown keys are rejected
// so that a misspelt threshold does not silently fall back.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseParams(data)
}

// ParseParams decodes YAML bytes on top of DefaultParams and validates the
// result.
func ParseParams(data []byte) (Params, error) {
	p := DefaultParams()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("invalid config: %w", err)
	}
	return p, nil
}

// workerCount resolves Workers, asking gopsutil for the logical CPU count
// when unset.
func (p Params) workerCount() int {
	if p.Workers > 0 {
		return p.Workers
	}
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}
