// Package imaging loads photographs and converts them into the fixed
// three-channel raster the detector operates on.
//
// # Coordinate System
//
// Unlike image.Image, a Raster is addressed as (row, col):
//   - row: vertical position (0 = topmost pixel)
//   - col: horizontal position (0 = leftmost pixel)
//
// This keeps the pixel arithmetic in the detection package close to the
// [height][width][channel] array layout that the thresholds were tuned on.
//
// # Formats
//
// PNG, JPEG and GIF decoding comes from the standard library; BMP, TIFF and
// WebP decoders are registered from golang.org/x/image. JPEG files carrying
// an EXIF orientation tag are rotated upright on load.
//
// # Debug Output
//
// Overlay and SavePNG render intermediate results (binary maps, candidate
// anchors, the final midpoint) so that a tuning session can inspect what the
// heuristics saw.
package imaging
