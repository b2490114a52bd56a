// Package detection finds the outer silhouettes of the objects in a
// photograph.
//
// Extraction runs the edge pipeline from package imaging, then traces the
// outer boundary of every edge component that can be reached from the frame
// border. Holes and shapes nested inside another shape are ignored, so a
// hollow object yields one silhouette. Silhouettes are ranked by enclosed
// area, largest first, and those smaller than a fraction of the frame are
// dropped as noise.
//
// # Backends
//
// The default build uses a pure Go implementation. Building with
// -tags gocv swaps in an OpenCV implementation of the same pipeline; it needs
// OpenCV 4 installed. Backend reports which one was compiled in.
//
// # Coordinate System
//
// Points use the source image's coordinates: origin at the top-left of
// img.Bounds(), X rightward, Y downward.
package detection
