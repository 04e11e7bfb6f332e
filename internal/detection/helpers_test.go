package detection

import (
	"testing"

	"github.com/ironsheep/phonefinder/internal/imaging"
)

// uniformRaster creates a raster with every channel of every pixel set to v.
func uniformRaster(width, height int, v uint8) *imaging.Raster {
	r := imaging.NewRaster(width, height)
	for i := range r.Pix {
		r.Pix[i] = v
	}
	return r
}

// fillRect paints rows [row, row+h) and cols [col, col+w) with gray v.
func fillRect(r *imaging.Raster, row, col, h, w int, v uint8) {
	for y := row; y < row+h; y++ {
		for x := col; x < col+w; x++ {
			r.Set(y, x, v, v, v)
		}
	}
}

// phoneRaster is a bright surface with one dark uniform block on it.
func phoneRaster(size, blockRow, blockCol, blockSize int) *imaging.Raster {
	r := uniformRaster(size, size, 200)
	fillRect(r, blockRow, blockCol, blockSize, blockSize, 10)
	return r
}

// noisyRaster fills a raster with a deterministic pseudo-random pattern.
func noisyRaster(width, height int, lo, span uint8) *imaging.Raster {
	r := imaging.NewRaster(width, height)
	seed := uint32(12345)
	for i := range r.Pix {
		seed = seed*1103515245 + 12345
		r.Pix[i] = lo + uint8((seed>>16)%uint32(span))
	}
	return r
}

// backgroundMap returns a map with every cell set to Background.
func backgroundMap(width, height int) *BinaryMap {
	m := NewBinaryMap(width, height)
	for i := range m.Cells {
		m.Cells[i] = Background
	}
	return m
}

// carve sets a rectangle of the map to Candidate.
func carve(m *BinaryMap, row, col, h, w int) {
	for y := row; y < row+h; y++ {
		for x := col; x < col+w; x++ {
			m.Set(y, x, Candidate)
		}
	}
}

func singleWorker() Params {
	p := DefaultParams()
	p.Workers = 1
	return p
}

func assertBinary(t *testing.T, m *BinaryMap) {
	t.Helper()
	for i, v := range m.Cells {
		if v != Candidate && v != Background {
			t.Fatalf("cell %d has value %d, expected 0 or 255", i, v)
		}
	}
}
