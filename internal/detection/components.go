package detection

import "errors"

// ErrNoComponents is returned when the binary map holds no Candidate cell
// inside the scan band.
var ErrNoComponents = errors.New("no connected components found")

// Component is a 4-connected region of Candidate cells.
type Component struct {
	// Row, Col is the anchor: the first cell of the region met in
	// row-major scan order. It is not necessarily a geometric corner.
	Row int `json:"row"`
	Col int `json:"col"`

	// Size is the number of cells in the region (at least 1).
	Size int `json:"size"`
}

// scanBand is the inclusive region traversal may enter. Anchors are only
// picked from rows lo..rowHi-1 and cols lo..colHi-1.
type scanBand struct {
	lo, rowHi, colHi int
}

func (b scanBand) contains(row, col int) bool {
	return row >= b.lo && row <= b.rowHi && col >= b.lo && col <= b.colHi
}

// FindComponents lists every connected Candidate region in m, in anchor
// scan order.
//
// The scan covers rows and cols from WindowSize/2 up to (dimension -
// WindowSize); traversal may extend one further row/col on the high side
// but never below WindowSize/2. The unwritten border band is therefore
// never reported. m is not modified.
func FindComponents(m *BinaryMap, windowSize int) []Component {
	band := scanBand{
		lo:    windowSize / 2,
		rowHi: m.Height - windowSize + 1,
		colHi: m.Width - windowSize + 1,
	}

	visited := make([]bool, len(m.Cells))
	var stack []int
	var components []Component

	for row := band.lo; row < band.rowHi; row++ {
		for col := band.lo; col < band.colHi; col++ {
			start := row*m.Width + col
			if visited[start] || m.Cells[start] != Candidate {
				continue
			}

			size := 0
			visited[start] = true
			stack = append(stack[:0], start)
			for len(stack) > 0 {
				idx := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++

				r, c := idx/m.Width, idx%m.Width
				for _, n := range [4][2]int{{r - 1, c}, {r + 1, c}, {r, c - 1}, {r, c + 1}} {
					if !band.contains(n[0], n[1]) {
						continue
					}
					ni := n[0]*m.Width + n[1]
					if visited[ni] || m.Cells[ni] != Candidate {
						continue
					}
					visited[ni] = true
					stack = append(stack, ni)
				}
			}

			components = append(components, Component{Row: row, Col: col, Size: size})
		}
	}

	return components
}

// SelectCandidates keeps the plausibly phone-sized components.
//
// Components with MinComponentSize < Size < MaxComponentSize survive in
// their original order. When none do, the single largest component (first
// on ties) is returned instead. An empty input yields ErrNoComponents.
func SelectCandidates(components []Component, p Params) ([]Component, error) {
	if len(components) == 0 {
		return nil, ErrNoComponents
	}

	largest := components[0]
	var kept []Component
	for _, c := range components {
		if c.Size > largest.Size {
			largest = c
		}
		if c.Size > p.MinComponentSize && c.Size < p.MaxComponentSize {
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 {
		return []Component{largest}, nil
	}
	return kept, nil
}

// ExtractComponents runs FindComponents followed by SelectCandidates.
func ExtractComponents(m *BinaryMap, p Params) ([]Component, error) {
	return SelectCandidates(FindComponents(m, p.WindowSize), p)
}
