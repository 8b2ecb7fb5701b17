// Package imaging provides the image-level building blocks of the lab
// pipelines.
//
// This package implements loading and saving, grayscale conversion, Canny
// edge detection, YCbCr-bounded colour masks and an annotation canvas that
// stands in for an interactive plot. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Grayscale
//
// Luminance uses the ITU-R BT.709 weights 0.2125*R + 0.7154*G + 0.0721*B.
// GrayPlane returns float values in [0,1]; GrayImage returns the 8-bit
// equivalent for previews and grey-level morphology.
//
// # Colour Spaces
//
// Menu item colours are specified as ranges in studio-swing BT.601 YCbCr
// (Y in 16..235, U and V centred on 128). YUVToRGB converts a bound to RGB
// with each component truncated toward zero and clamped to 0..255.
//
// # Edge Detection
//
// Canny follows the classic pipeline (Gaussian smoothing, Sobel gradients,
// non-maximum suppression, hysteresis). Two backends implement the
// EdgeDetector interface: the pure-Go NativeCanny and GoCVCanny, which is
// only functional in binaries built with the "gocv" build tag.
//
// # Annotation
//
// Canvas draws rectangles, markers, disks and text (golang.org/x/image
// basicfont) onto an RGBA copy of a background image. Colours may be given
// as names ("white", "red") or hex strings and are parsed with go-colorful.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O errors during image loading or saving
//   - Unsupported file extensions on save
//   - Empty images passed to detectors
//   - Unknown colour names or marker styles
package imaging
