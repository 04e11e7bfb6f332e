package detection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/phonefinder/internal/imaging"
	"github.com/ironsheep/phonefinder/internal/logging"
)

// ErrNotFound reports that no phone-like region was located. It is a valid
// outcome, not a fault.
var ErrNotFound = errors.New("could not locate the phone")

// Result is the outcome of a successful Find.
type Result struct {
	// X is the midpoint row divided by the image height.
	X float64 `json:"x"`
	// Y is the midpoint column divided by the image width.
	Y float64 `json:"y"`

	// Midpoint is the estimate in pixels.
	Midpoint Midpoint `json:"midpoint"`

	// Anchor is the winning candidate with its boundary score.
	Anchor ScoredComponent `json:"anchor"`

	// Candidates is the number of components that reached scoring.
	Candidates int `json:"candidates"`
}

// Stages exposes the intermediate products of a Find for debugging.
type Stages struct {
	Binary     *BinaryMap
	Components []Component
	Scored     []ScoredComponent
	Extent     Extent
}

// Finder runs the detection pipeline with a fixed parameter set.
//
// A Finder keeps no state between calls and may be used concurrently.
type Finder struct {
	params Params
	log    zerolog.Logger
}

// NewFinder validates p and returns a Finder.
func NewFinder(p Params) (*Finder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Finder{
		params: p,
		log:    logging.Module("detection"),
	}, nil
}

// Params returns the parameters the Finder was built with.
func (f *Finder) Params() Params {
	return f.params
}

// Find locates the phone in img and returns normalized coordinates.
//
// ErrNotFound (wrapping ErrNoComponents) is returned when the binary map
// holds no candidate region.
func (f *Finder) Find(ctx context.Context, img *imaging.Raster) (*Result, error) {
	res, _, err := f.FindWithStages(ctx, img)
	return res, err
}

// FindWithStages is Find that also returns the intermediate products. The
// stages are populated as far as the pipeline got, even on ErrNotFound.
func (f *Finder) FindWithStages(ctx context.Context, img *imaging.Raster) (*Result, *Stages, error) {
	stages := &Stages{}
	if img.Width == 0 || img.Height == 0 {
		return nil, stages, fmt.Errorf("%w: empty image", ErrNotFound)
	}

	f.log.Info().
		Int("width", img.Width).
		Int("height", img.Height).
		Int("workers", f.params.workerCount()).
		Msg("Running sliding window on image, this can take a while")

	start := time.Now()
	binary, err := Binarize(ctx, img, f.params)
	if err != nil {
		return nil, stages, fmt.Errorf("binarization aborted: %w", err)
	}
	stages.Binary = binary
	f.log.Debug().Dur("elapsed", time.Since(start)).Msg("binarized")

	all := FindComponents(binary, f.params.WindowSize)
	candidates, err := SelectCandidates(all, f.params)
	if err != nil {
		f.log.Debug().Msg("no candidate regions")
		return nil, stages, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	stages.Components = candidates
	f.log.Debug().
		Int("components", len(all)).
		Int("candidates", len(candidates)).
		Msg("extracted components")

	scored := ScoreBoundaries(img, candidates, f.params)
	stages.Scored = scored
	best, _ := BestCandidate(scored)
	for _, s := range scored {
		f.log.Trace().
			Int("row", s.Row).
			Int("col", s.Col).
			Int("size", s.Size).
			Int("score", s.Score).
			Msg("candidate")
	}

	extent := MeasureExtent(binary, best.Row, best.Col)
	stages.Extent = extent
	mid := extent.Center()

	res := &Result{
		X:          mid.Row / float64(img.Height),
		Y:          mid.Col / float64(img.Width),
		Midpoint:   mid,
		Anchor:     best,
		Candidates: len(candidates),
	}
	f.log.Debug().
		Int("anchor_row", best.Row).
		Int("anchor_col", best.Col).
		Int("score", best.Score).
		Float64("row", mid.Row).
		Float64("col", mid.Col).
		Dur("elapsed", time.Since(start)).
		Msg("phone located")

	return res, stages, nil
}
