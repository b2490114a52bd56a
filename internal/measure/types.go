package measure

import (
	"image"
	"sort"

	"github.com/ironsheep/object-measure-mcp/internal/geometry"
)

// Role tags an object within one photograph.
type Role string

const (
	RoleReference Role = "reference"
	RoleTarget    Role = "target"
)

// OrientedExtent is the planar size of one silhouette: the two side lengths
// of its minimum-area rectangle and the X coordinate of its area centroid.
// EdgeA spans the top and bottom edge midpoints, EdgeB the left and right.
type OrientedExtent struct {
	EdgeA     float64 `json:"edge_a"`
	EdgeB     float64 `json:"edge_b"`
	CentroidX float64 `json:"centroid_x"`

	// Area is the silhouette's enclosed area in square pixels.
	Area float64 `json:"area"`

	// Corners of the minimum-area rectangle, top-left first, clockwise.
	Corners geometry.Quad `json:"corners"`

	// Bounds is the silhouette's axis-aligned bounding box.
	Bounds image.Rectangle `json:"bounds"`
}

// Swapped returns e with EdgeA and EdgeB exchanged.
func (e OrientedExtent) Swapped() OrientedExtent {
	e.EdgeA, e.EdgeB = e.EdgeB, e.EdgeA
	return e
}

// ViewObservation is the reference and target extents found in one
// photograph.
type ViewObservation struct {
	Reference OrientedExtent `json:"reference"`
	Target    OrientedExtent `json:"target"`
}

// Fused3D is an object's size in a consistent pixel basis: the two top-view
// edges followed by the front-view edge that was not matched.
type Fused3D [3]float64

// CalibrationRef is the known physical size of the reference object, in the
// same axis order the fuser produces for it.
type CalibrationRef struct {
	RealDims [3]float64 `json:"real_dims"`
}

// Measurement is the estimated real-world size of the target object.
type Measurement struct {
	RealDims [3]float64 `json:"real_dims"`
}

// Sorted returns m with its dimensions in descending order.
func (m Measurement) Sorted() Measurement {
	dims := m.RealDims[:]
	sorted := make([]float64, len(dims))
	copy(sorted, dims)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var out Measurement
	copy(out.RealDims[:], sorted)
	return out
}

// Result is a measurement together with the intermediate values that
// produced it.
type Result struct {
	Measurement Measurement     `json:"measurement"`
	Reference   Fused3D         `json:"reference_px"`
	Target      Fused3D         `json:"target_px"`
	Scale       [3]float64      `json:"scale"`
	Top         ViewObservation `json:"top"`
	Front       ViewObservation `json:"front"`
}
