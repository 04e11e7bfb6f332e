// Package detection locates a phone lying on a lighter surface using
// classical image heuristics.
//
// # Pipeline
//
// Find runs five stages, each available on its own:
//
//  1. Patch metrics: texture and intensity of a W×W window (PatchMetrics)
//  2. Binarization: every window centre that is smooth and dark becomes a
//     Candidate cell, everything else Background (Binarize)
//  3. Component extraction: 4-connected Candidate regions are counted by an
//     iterative flood fill and filtered to phone-like sizes
//     (FindComponents, SelectCandidates)
//  4. Boundary scoring: rays from each anchor look for bright surroundings;
//     the anchor with the most bright directions wins (ScoreBoundaries,
//     BestCandidate)
//  5. Midpoint estimation: the winning region's vertical and horizontal
//     extents are walked in the binary map and averaged (MeasureExtent)
//
// The result is normalized by the image height (X) and width (Y).
//
// # Coordinate System
//
// Positions are (row, col) with (0, 0) at the top-left, matching
// imaging.Raster. Note that Result.X is the row axis and Result.Y the
// column axis.
//
// # Tuning
//
// All thresholds live in Params. The defaults were hand-tuned on phone
// photographs of roughly 490×326 pixels; other resolutions may need
// different component size bounds.
//
// # Concurrency
//
// Binarization is split across goroutines by row bands. The remaining
// stages are sequential. The binary map is never modified after it is
// produced, so it can be shared by extraction and midpoint estimation.
package detection
