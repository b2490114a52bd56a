// Package geometry provides the planar primitives used to turn a traced
// silhouette into an oriented extent.
//
// All functions operate on gonum r2.Vec points in image coordinates: (0,0) is
// the top-left pixel, X grows rightward and Y grows downward. Nothing in this
// package allocates beyond its own return values or holds state between calls.
//
// # Minimum-Area Rectangle
//
// MinAreaRect runs rotating calipers over the convex hull. For every hull edge
// the remaining hull points are projected onto the edge direction and its
// normal; the edge whose projection box has the smallest area wins. Ties keep
// the first edge found, so results are deterministic for a given input order.
//
// # Corner Ordering
//
// OrderCorners puts four rectangle corners into top-left, top-right,
// bottom-right, bottom-left order from their positions alone. The two
// leftmost corners (by X, then Y) are split by Y into top-left and
// bottom-left; of the two rightmost corners the one farther from top-left is
// bottom-right.
package geometry
