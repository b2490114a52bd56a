package measure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Match reports whether a top-view edge and a front-view edge are the same
// physical edge under t.
func (t Tolerance) Match(top, front float64) bool {
	switch t.Mode {
	case MatchRelative:
		return math.Abs(top-front) <= t.Value*front
	default:
		return scalar.EqualWithinAbs(top, front, t.Value)
	}
}

// Fuse combines one object's top and front extents into a Fused3D.
//
// Edge pairs are tried in the order (top.A, front.A), (top.A, front.B),
// (top.B, front.A), (top.B, front.B). The first pair within tolerance is
// the shared edge and the result is {top.A, top.B, other front edge}.
func Fuse(top, front OrientedExtent, tol Tolerance) (Fused3D, error) {
	topEdges := [2]float64{top.EdgeA, top.EdgeB}
	frontEdges := [2]float64{front.EdgeA, front.EdgeB}

	for _, t := range topEdges {
		for j, f := range frontEdges {
			if tol.Match(t, f) {
				return Fused3D{top.EdgeA, top.EdgeB, frontEdges[1-j]}, nil
			}
		}
	}

	return Fused3D{}, &Error{
		Op:   "fuse",
		Kind: KindDimensionMatch,
		Err: fmt.Errorf("no edge of top (%.1f, %.1f) matches front (%.1f, %.1f) within %s tolerance %g",
			top.EdgeA, top.EdgeB, front.EdgeA, front.EdgeB, tol.Mode, tol.Value),
	}
}
