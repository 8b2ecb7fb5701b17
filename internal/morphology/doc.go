// Package morphology provides binary masks and the mathematical morphology
// operations the lab pipelines use to clean detector output.
//
// A Mask is a dense width x height grid of booleans. Masks convert to and
// from *image.Gray (true = 255) so they can be saved, previewed and handed
// to image filters.
//
// # Structuring Elements
//
// Two footprints are supported:
//   - Square(n): an n x n block. Even sizes are anchored so the element
//     covers offsets -n/2 .. n-1-n/2 on both axes.
//   - Disk(r): every offset with dx*dx+dy*dy <= r*r, a (2r+1) x (2r+1) disk.
//
// Square elements are applied through bild's max/min spatial filters.
// Disks, which bild cannot express, are scanned directly.
//
// # Border Handling
//
// Dilation ignores pixels outside the image. Erosion treats them as
// foreground, so objects touching the border are not eaten away from it.
// Closing is always dilation followed by erosion with the same element.
package morphology
