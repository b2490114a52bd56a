package geometry

import (
	"image"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// FromImagePoints converts integer pixel positions to r2 vectors.
func FromImagePoints(pts []image.Point) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[i] = r2.Vec{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

// ConvexHull returns the convex hull of pts using Andrew's monotone chain.
//
// Duplicate and collinear points are dropped. A hull of fewer than three
// points is returned for degenerate inputs: one point for a single distinct
// position, the two extreme points for a collinear set.
func ConvexHull(pts []r2.Vec) []r2.Vec {
	if len(pts) == 0 {
		return nil
	}

	sorted := make([]r2.Vec, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	uniq := sorted[:1]
	for _, p := range sorted[1:] {
		if p != uniq[len(uniq)-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return uniq
	}

	hull := make([]r2.Vec, 0, 2*len(uniq))

	// Lower chain
	for _, p := range uniq {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper chain
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Last point repeats the first
	return hull[:len(hull)-1]
}

// turn is the z component of (a-o) x (b-o). Positive means b lies to the
// left of the directed line o->a in a Y-up frame.
func turn(o, a, b r2.Vec) float64 {
	return r2.Cross(r2.Sub(a, o), r2.Sub(b, o))
}
