package imaging

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultMarkerColor is the hex colour used for the result crosshair when
// the caller does not pick one.
const DefaultMarkerColor = "#FF0000"

// MarkerShape selects how a Marker is drawn.
type MarkerShape int

const (
	// Crosshair draws a horizontal and a vertical line through the point.
	Crosshair MarkerShape = iota
	// Box draws a square outline centred on the point.
	Box
)

// Marker is a point of interest drawn by Overlay.
type Marker struct {
	Row   int
	Col   int
	Size  int // Half-extent in pixels
	Shape MarkerShape
	Color color.RGBA
}

// Overlay renders the raster with markers drawn on top.
//
// Marker pixels falling outside the raster are clipped. The raster itself is
// not modified.
func Overlay(r *Raster, markers []Marker) *image.RGBA {
	result := r.Image()
	bounds := result.Bounds()

	set := func(row, col int, c color.RGBA) {
		if col >= bounds.Min.X && col < bounds.Max.X && row >= bounds.Min.Y && row < bounds.Max.Y {
			result.SetRGBA(col, row, c)
		}
	}

	for _, m := range markers {
		switch m.Shape {
		case Crosshair:
			for d := -m.Size; d <= m.Size; d++ {
				set(m.Row, m.Col+d, m.Color)
				set(m.Row+d, m.Col, m.Color)
			}
		case Box:
			for d := -m.Size; d <= m.Size; d++ {
				set(m.Row-m.Size, m.Col+d, m.Color)
				set(m.Row+m.Size, m.Col+d, m.Color)
				set(m.Row+d, m.Col-m.Size, m.Color)
				set(m.Row+d, m.Col+m.Size, m.Color)
			}
		}
	}

	return result
}

// ParseColor parses a hex colour string like "#FF0000" or "ff0000".
//
// The result is fully opaque.
func ParseColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	if len(hex) != 7 && len(hex) != 4 {
		return color.RGBA{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// SavePNG writes img to path as PNG, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
