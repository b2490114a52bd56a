// Package measure estimates the real-world size of an object from two
// photographs.
//
// Each request carries a top-down and a front photograph. Both show the
// object being measured (the target) and a reference object of known size.
// The pipeline runs in four stages:
//
//  1. Extraction: the two largest silhouettes in each photograph are found
//     by package detection.
//  2. Planar measurement: each silhouette becomes an OrientedExtent, the
//     side lengths of its minimum-area rectangle plus its centroid X.
//  3. Disambiguation: within each photograph, the silhouette on the
//     configured side (left by default) is the reference.
//  4. Fusion and calibration: the top and front extents of each object are
//     joined on their shared edge into a Fused3D, and the target's pixel
//     size is scaled per axis by the reference's real/pixel ratio.
//
// The reference must sit on the same side in both photographs. Roles are
// assigned by position only, so swapping the objects between shots silently
// swaps the result.
//
// All failures are *Error values tagged with a Kind. Use errors.Is with the
// Err* sentinels or IsKind to classify them.
package measure
