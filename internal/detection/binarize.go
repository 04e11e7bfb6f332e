package detection

import (
	"context"
	"image"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/phonefinder/internal/imaging"
)

// Cell values of a BinaryMap.
const (
	// Candidate marks a smooth, dark window centre.
	Candidate uint8 = 0
	// Background marks everything else.
	Background uint8 = 255
)

// BinaryMap is a row-major grid of Candidate/Background cells with the
// same dimensions as the raster it was computed from.
//
// Cells closer than WindowSize/2 to an edge are never classified and keep
// the zero value, i.e. Candidate.
type BinaryMap struct {
	Width  int
	Height int
	Cells  []uint8
}

// NewBinaryMap returns a map with every cell set to Candidate.
func NewBinaryMap(width, height int) *BinaryMap {
	return &BinaryMap{
		Width:  width,
		Height: height,
		Cells:  make([]uint8, width*height),
	}
}

// At returns the cell at (row, col). The caller must ensure the position
// is inside the map.
func (m *BinaryMap) At(row, col int) uint8 {
	return m.Cells[row*m.Width+col]
}

// Set stores v at (row, col). v must be Candidate or Background.
func (m *BinaryMap) Set(row, col int, v uint8) {
	m.Cells[row*m.Width+col] = v
}

// In reports whether (row, col) lies inside the map.
func (m *BinaryMap) In(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// Clone returns a deep copy of the map.
func (m *BinaryMap) Clone() *BinaryMap {
	c := &BinaryMap{Width: m.Width, Height: m.Height, Cells: make([]uint8, len(m.Cells))}
	copy(c.Cells, m.Cells)
	return c
}

// Image renders the map as an 8-bit grayscale image.
func (m *BinaryMap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for row := 0; row < m.Height; row++ {
		copy(img.Pix[row*img.Stride:row*img.Stride+m.Width], m.Cells[row*m.Width:(row+1)*m.Width])
	}
	return img
}

// PatchMetrics computes texture and intensity for the size×size window
// whose top-left pixel is (row, col).
//
// Texture is the summed absolute difference of neighbouring grayscale
// values (grayscale = channel mean) divided by 2*size*(size-1); see
// TextureMode for the vertical term. Intensity is the channel mean of the
// window's centre pixel.
//
// The window must lie entirely inside the raster.
func PatchMetrics(img *imaging.Raster, row, col, size int, mode TextureMode) (texture, intensity float64) {
	return patchMetrics(img, row, col, size, mode, make([]float64, size*size))
}

// patchMetrics is PatchMetrics with a caller-provided scratch buffer of
// size*size values.
func patchMetrics(img *imaging.Raster, row, col, size int, mode TextureMode, gray []float64) (float64, float64) {
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			gray[i*size+j] = img.Mean(row+i, col+j)
		}
	}

	var sum float64
	for i := 0; i < size; i++ {
		line := gray[i*size : (i+1)*size]
		for j := 1; j < size; j++ {
			sum += math.Abs(line[j] - line[j-1])
		}
	}

	switch mode {
	case TextureGradient:
		for j := 0; j < size; j++ {
			for i := 1; i < size; i++ {
				sum += math.Abs(gray[i*size+j] - gray[(i-1)*size+j])
			}
		}
	default:
		// first k rows, flattened, consecutive differences (k = 0 is empty)
		for k := 1; k < size; k++ {
			flat := gray[:k*size]
			for t := 1; t < len(flat); t++ {
				sum += math.Abs(flat[t] - flat[t-1])
			}
		}
	}

	shift := size / 2
	return sum / float64(2*size*(size-1)), img.Mean(row+shift, col+shift)
}

// Binarize slides the window over every position that fits inside img and
// classifies the window centre.
//
// A centre becomes Candidate when texture < TextureThreshold and intensity
// < IntensityThreshold, Background otherwise. Rows are split into bands and
// processed concurrently; bands write disjoint rows, so the result does not
// depend on the worker count. Cancelling ctx aborts with ctx.Err().
func Binarize(ctx context.Context, img *imaging.Raster, p Params) (*BinaryMap, error) {
	m := NewBinaryMap(img.Width, img.Height)

	size := p.WindowSize
	shift := size / 2
	rows := img.Height - size + 1
	cols := img.Width - size + 1
	if rows <= 0 || cols <= 0 {
		return m, nil
	}

	workers := p.workerCount()
	if workers > rows {
		workers = rows
	}
	band := (rows + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < rows; start += band {
		lo, hi := start, min(start+band, rows)
		g.Go(func() error {
			gray := make([]float64, size*size)
			for row := lo; row < hi; row++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out := m.Cells[(row+shift)*m.Width+shift:]
				for col := 0; col < cols; col++ {
					texture, intensity := patchMetrics(img, row, col, size, p.TextureMode, gray)
					if texture < p.TextureThreshold && intensity < p.IntensityThreshold {
						out[col] = Candidate
					} else {
						out[col] = Background
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}
