package geometry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Quad holds four rectangle corners. After OrderCorners the order is
// top-left, top-right, bottom-right, bottom-left.
type Quad [4]r2.Vec

// MinAreaRect returns the corners of the smallest-area rectangle enclosing
// pts. The corners come back in traversal order around the rectangle but not
// in canonical order; pass them through OrderCorners for that.
//
// A single distinct point yields four identical corners. A collinear set
// yields a zero-width rectangle spanning the segment.
func MinAreaRect(pts []r2.Vec) Quad {
	hull := ConvexHull(pts)
	switch len(hull) {
	case 0:
		return Quad{}
	case 1:
		return Quad{hull[0], hull[0], hull[0], hull[0]}
	}

	var best Quad
	bestArea := math.Inf(1)

	n := len(hull)
	for i := 0; i < n; i++ {
		edge := r2.Sub(hull[(i+1)%n], hull[i])
		if r2.Norm(edge) == 0 {
			continue
		}
		u := r2.Unit(edge)
		v := r2.Vec{X: -u.Y, Y: u.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			pu := r2.Dot(p, u)
			pv := r2.Dot(p, v)
			minU = math.Min(minU, pu)
			maxU = math.Max(maxU, pu)
			minV = math.Min(minV, pv)
			maxV = math.Max(maxV, pv)
		}

		area := (maxU - minU) * (maxV - minV)
		if area < bestArea {
			bestArea = area
			best = Quad{
				r2.Add(r2.Scale(minU, u), r2.Scale(minV, v)),
				r2.Add(r2.Scale(maxU, u), r2.Scale(minV, v)),
				r2.Add(r2.Scale(maxU, u), r2.Scale(maxV, v)),
				r2.Add(r2.Scale(minU, u), r2.Scale(maxV, v)),
			}
		}
	}

	return best
}

// OrderCorners returns q reordered as top-left, top-right, bottom-right,
// bottom-left. The result depends only on corner positions, never on the
// order they were passed in.
func OrderCorners(q Quad) Quad {
	pts := q
	sort.Slice(pts[:], func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	left := [2]r2.Vec{pts[0], pts[1]}
	right := [2]r2.Vec{pts[2], pts[3]}

	tl, bl := left[0], left[1]
	if bl.Y < tl.Y {
		tl, bl = bl, tl
	}

	tr, br := right[0], right[1]
	if r2.Norm(r2.Sub(tr, tl)) > r2.Norm(r2.Sub(br, tl)) {
		tr, br = br, tr
	}

	return Quad{tl, tr, br, bl}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// MidpointSpans measures an ordered quad through its edge midpoints.
//
// vertical is the distance from the top edge midpoint to the bottom edge
// midpoint; horizontal is the distance from the left edge midpoint to the
// right edge midpoint.
func MidpointSpans(q Quad) (vertical, horizontal float64) {
	tl, tr, br, bl := q[0], q[1], q[2], q[3]
	vertical = r2.Norm(r2.Sub(Midpoint(tl, tr), Midpoint(bl, br)))
	horizontal = r2.Norm(r2.Sub(Midpoint(tl, bl), Midpoint(tr, br)))
	return vertical, horizontal
}
