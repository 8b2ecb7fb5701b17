// Package detection turns binary masks into measured regions.
//
// This package implements the connected-component stage shared by every
// lab pipeline: a mask produced by an edge detector, a colour threshold or
// a marker image is split into labelled components, each component is
// measured, and the measurements are filtered by area.
//
// # Labelling
//
// Label assigns consecutive labels 1..N in raster order: the component that
// owns the first true pixel met while scanning rows top to bottom (and each
// row left to right) gets label 1, and so on. Label 0 is background.
// Connectivity is configurable; pipelines use 8-connectivity.
//
// # Region Properties
//
// For every label, Regions reports:
//   - Area: number of pixels
//   - Bounds: bounding box, Min inclusive and Max exclusive
//   - Centroid: mean column (X) and mean row (Y) as floats
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Alignment
//
// FindAlignedRuns groups region centroids whose coordinate on one axis
// differs by less than a threshold from its sorted neighbour, which is how
// the blob pipeline reports objects lying approximately on one line.
// CheckAlignment summarises a whole point set by the spread of its
// coordinates on each axis.
package detection
