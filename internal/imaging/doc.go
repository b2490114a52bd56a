// Package imaging provides the pixel-level stages of the measurement
// pipeline: loading, intensity conversion, illumination correction, edge
// detection, morphology, cropping and debug overlays.
//
// All operations accept standard Go image.Image values and use a coordinate
// system where (0,0) is the top-left corner, X increases rightward, and Y
// increases downward. Intermediate planes produced here (grayscale copies,
// edge maps) are always rebased to a (0,0) origin.
//
// # Edge Pipeline
//
// EdgeMap chains the stages in the order contour extraction expects:
//
//  1. Grayscale: BT.601 luminance via disintegration/imaging
//  2. Illumination correction: pixel * 255 / GaussianBlur(pixel, BlurKernel)
//  3. Light Gaussian blur with SmoothKernel (bild)
//  4. Canny with LowThreshold / HighThreshold
//  5. One dilation and one erosion (bild rank filters)
//
// # Immutability
//
// Inputs are never written to. Every stage allocates its own output, owned by
// the caller. Photographs held in ImageCache may therefore be shared across
// concurrent measurement requests.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O and decode failures during loading
//   - Crop regions that fall entirely outside the image
//   - PNG encoding failures
package imaging
