package detection

// Extent describes the span of a component measured from its anchor.
type Extent struct {
	Top    int `json:"top"`    // anchor row
	Bottom int `json:"bottom"` // last Candidate row below the anchor
	MidRow int `json:"mid_row"`
	Left   int `json:"left"`  // first Candidate col on MidRow
	Right  int `json:"right"` // last Candidate col on MidRow
}

// Midpoint is a sub-pixel position in (row, col) order.
type Midpoint struct {
	Row float64 `json:"row"`
	Col float64 `json:"col"`
}

// MeasureExtent walks the binary map from the anchor (row, col).
//
// It goes down column col while cells are Candidate to find Bottom, then
// left and right along MidRow = (Top+Bottom)/2. Every walk stops at the
// last in-bounds Candidate cell; if the starting cell of a walk is not a
// Candidate the boundary stays at the start.
func MeasureExtent(m *BinaryMap, row, col int) Extent {
	e := Extent{Top: row, Bottom: row}
	for e.Bottom+1 < m.Height && m.At(e.Bottom+1, col) == Candidate {
		e.Bottom++
	}

	e.MidRow = (e.Top + e.Bottom) / 2
	e.Left, e.Right = col, col
	for e.Left-1 >= 0 && m.At(e.MidRow, e.Left-1) == Candidate {
		e.Left--
	}
	for e.Right+1 < m.Width && m.At(e.MidRow, e.Right+1) == Candidate {
		e.Right++
	}
	return e
}

// Center averages the four boundary points of the extent.
//
// The top and bottom points sit on the horizontal midpoint column and the
// left and right points on MidRow, so a solid rectangle yields its centre.
func (e Extent) Center() Midpoint {
	midCol := float64(e.Left+e.Right) / 2
	return Midpoint{
		Row: float64(e.Top+e.Bottom+2*e.MidRow) / 4,
		Col: (2*midCol + float64(e.Left) + float64(e.Right)) / 4,
	}
}

// EstimateMidpoint returns the approximate centre of the component whose
// anchor is (row, col). m must be the map the component was found in.
func EstimateMidpoint(m *BinaryMap, row, col int) Midpoint {
	return MeasureExtent(m, row, col).Center()
}
