package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// Channels is the number of samples stored per pixel (R, G, B).
const Channels = 3

// Raster is a dense [height][width][3] array of 8-bit RGB samples.
//
// The detector treats a Raster as read-only. Set exists for building
// fixtures and for Overlay, which works on its own copy.
type Raster struct {
	Width  int
	Height int

	// Pix holds the samples row-major: the pixel at (row, col) starts at
	// Pix[(row*Width+col)*3].
	Pix []uint8
}

// NewRaster returns a black raster of the given size.
func NewRaster(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// FromImage converts any image.Image into a Raster.
//
// Alpha is dropped after compositing through image.RGBA, so translucent
// pixels come out premultiplied (darker) rather than with their straight
// colour values.
func FromImage(img image.Image) *Raster {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	r := NewRaster(b.Dx(), b.Dy())

	for row := 0; row < r.Height; row++ {
		src := rgba.PixOffset(b.Min.X, b.Min.Y+row)
		dst := row * r.Width * Channels
		for col := 0; col < r.Width; col++ {
			r.Pix[dst] = rgba.Pix[src]
			r.Pix[dst+1] = rgba.Pix[src+1]
			r.Pix[dst+2] = rgba.Pix[src+2]
			src += 4
			dst += Channels
		}
	}
	return r
}

// In reports whether (row, col) lies inside the raster.
func (r *Raster) In(row, col int) bool {
	return row >= 0 && row < r.Height && col >= 0 && col < r.Width
}

// RGB returns the three samples at (row, col). The caller must ensure the
// position is inside the raster.
func (r *Raster) RGB(row, col int) (uint8, uint8, uint8) {
	i := (row*r.Width + col) * Channels
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

// Set stores the samples at (row, col). Out-of-range positions are ignored.
func (r *Raster) Set(row, col int, red, green, blue uint8) {
	if !r.In(row, col) {
		return
	}
	i := (row*r.Width + col) * Channels
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = red, green, blue
}

// Mean returns the average of the three samples at (row, col).
func (r *Raster) Mean(row, col int) float64 {
	red, green, blue := r.RGB(row, col)
	return float64(int(red)+int(green)+int(blue)) / 3
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	c := &Raster{Width: r.Width, Height: r.Height, Pix: make([]uint8, len(r.Pix))}
	copy(c.Pix, r.Pix)
	return c
}

// Image converts the raster back into an opaque *image.RGBA.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			i := (row*r.Width + col) * Channels
			o := img.PixOffset(col, row)
			img.Pix[o] = r.Pix[i]
			img.Pix[o+1] = r.Pix[i+1]
			img.Pix[o+2] = r.Pix[i+2]
			img.Pix[o+3] = 255
		}
	}
	return img
}
