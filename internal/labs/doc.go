// Package labs wires the imaging, morphology, detection and haar packages
// into the three lab pipelines.
//
// # Pipelines
//
//   - Blobs finds objects from their Canny outline, numbers them and reports
//     which centroids line up on a row or column.
//   - Food segments menu items by per-item YCbCr colour bounds, growing the
//     mask with dilation and closing until a region of the expected size
//     appears.
//   - Haar votes with 10x10 Haar primitives, turns the voted centres into
//     disks and boxes the regions that grey-level morphology makes of them.
//
// Every pipeline is a single synchronous call that reads one image, writes
// its intermediate images, an annotated result and a JSON report into the
// output directory, and returns the report.
package labs
