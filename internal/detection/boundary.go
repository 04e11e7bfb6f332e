package detection

import "github.com/ironsheep/phonefinder/internal/imaging"

// Direction is one of the four probe rays cast from an anchor.
type Direction int

const (
	Down Direction = iota
	Right
	Up
	Left
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Right:
		return "right"
	case Up:
		return "up"
	case Left:
		return "left"
	}
	return "unknown"
}

// step is the (row, col) increment of a direction.
func (d Direction) step() (int, int) {
	switch d {
	case Down:
		return 1, 0
	case Right:
		return 0, 1
	case Up:
		return -1, 0
	default:
		return 0, -1
	}
}

// directions lists the probes in scoring order.
var directions = [4]Direction{Down, Right, Up, Left}

// ScoredComponent is a candidate annotated with its white-patch score.
type ScoredComponent struct {
	Component

	// Score counts the directions in which a bright pixel was found (0-4).
	Score int `json:"score"`

	// Found records the per-direction outcome, indexed by Direction.
	Found [4]bool `json:"-"`
}

// ProbeWhitePatch walks up to length pixels from (row, col) in direction d,
// starting with the anchor pixel itself, and reports whether any pixel has
// a channel mean above threshold. Leaving the raster ends the walk as not
// found.
func ProbeWhitePatch(img *imaging.Raster, row, col int, d Direction, length int, threshold float64) bool {
	dr, dc := d.step()
	for i := 0; i < length; i++ {
		r, c := row+dr*i, col+dc*i
		if !img.In(r, c) {
			return false
		}
		if img.Mean(r, c) > threshold {
			return true
		}
	}
	return false
}

// ScoreBoundaries probes all four directions around every candidate anchor.
func ScoreBoundaries(img *imaging.Raster, candidates []Component, p Params) []ScoredComponent {
	scored := make([]ScoredComponent, 0, len(candidates))
	for _, c := range candidates {
		s := ScoredComponent{Component: c}
		for _, d := range directions {
			if ProbeWhitePatch(img, c.Row, c.Col, d, p.ProbeLength, p.WhitePatchThreshold) {
				s.Found[d] = true
				s.Score++
			}
		}
		scored = append(scored, s)
	}
	return scored
}

// BestCandidate returns the highest-scoring entry, preferring the earliest
// on ties. ok is false for an empty slice.
func BestCandidate(scored []ScoredComponent) (best ScoredComponent, ok bool) {
	for i, s := range scored {
		if i == 0 || s.Score > best.Score {
			best = s
		}
	}
	return best, len(scored) > 0
}
