package measure

import (
	"github.com/ironsheep/object-measure-mcp/internal/detection"
	"github.com/ironsheep/object-measure-mcp/internal/geometry"
)

// MeasureSilhouette computes the oriented extent of s.
//
// The minimum-area rectangle's corners are put in canonical order before
// the midpoint spans are taken, so the result does not depend on where the
// boundary trace started. A zero-area silhouette has CentroidX 0.
func MeasureSilhouette(s detection.Silhouette) OrientedExtent {
	pts := geometry.FromImagePoints(s.Points)
	corners := geometry.OrderCorners(geometry.MinAreaRect(pts))
	edgeA, edgeB := geometry.MidpointSpans(corners)
	moments := geometry.PolygonMoments(pts)

	return OrientedExtent{
		EdgeA:     edgeA,
		EdgeB:     edgeB,
		CentroidX: moments.Centroid().X,
		Area:      moments.M00,
		Corners:   corners,
		Bounds:    s.Bounds,
	}
}

// MeasureSilhouettes measures each silhouette, preserving order.
func MeasureSilhouettes(silhouettes []detection.Silhouette) []OrientedExtent {
	out := make([]OrientedExtent, len(silhouettes))
	for i, s := range silhouettes {
		out[i] = MeasureSilhouette(s)
	}
	return out
}
