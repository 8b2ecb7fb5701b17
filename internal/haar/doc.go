// Package haar finds 10x10 Haar-like primitives in a grayscale plane.
//
// A primitive is a 0/1 pattern. Sliding it over the plane, the response of
// a window is b-w, where b sums the pixels under the 1 cells and w sums the
// pixels under the 0 cells. A window is a hit when |b-w| lies strictly
// between the low and high thresholds of the search.
//
// Hits from one or more searches are accumulated as votes on their window
// centres; PaintVotes turns the centres with a chosen vote count into solid
// disks that later morphology can merge into regions.
package haar
