package detection

import (
	"image"
	"sort"

	"github.com/ironsheep/object-measure-mcp/internal/imaging"
)

// Silhouette is the outer boundary of one detected shape.
type Silhouette struct {
	// Points is the closed boundary in image coordinates, traced clockwise.
	// The first point is not repeated at the end.
	Points []image.Point `json:"-"`

	// Area is the area enclosed by Points in square pixels.
	Area float64 `json:"area"`

	// Bounds is the axis-aligned bounding box of Points. Max is exclusive.
	Bounds image.Rectangle `json:"bounds"`
}

// Params configures silhouette extraction.
type Params struct {
	Edges imaging.EdgeParams `json:"edges"`

	// MinAreaRatio drops silhouettes whose area is below this fraction of
	// the frame. Zero keeps everything.
	MinAreaRatio float64 `json:"min_area_ratio"`
}

// DefaultParams returns the edge settings tuned for a tabletop photograph
// of two objects on a plain background.
func DefaultParams() Params {
	return Params{
		Edges: imaging.EdgeParams{
			BlurKernel:    25,
			SmoothKernel:  7,
			LowThreshold:  50,
			HighThreshold: 100,
		},
		MinAreaRatio: 0.001,
	}
}

// Extractor turns a photograph into silhouettes ranked by area, largest
// first, with noise already filtered out.
//
// Implementations must not modify img and must be safe for concurrent use.
type Extractor interface {
	Extract(img image.Image) ([]Silhouette, error)
}

// Rank sorts silhouettes by area descending. Equal areas fall back to the
// bounding box position (left, then top) so the order never depends on
// tracing order.
func Rank(silhouettes []Silhouette) {
	sort.SliceStable(silhouettes, func(i, j int) bool {
		a, b := silhouettes[i], silhouettes[j]
		if a.Area != b.Area {
			return a.Area > b.Area
		}
		if a.Bounds.Min.X != b.Bounds.Min.X {
			return a.Bounds.Min.X < b.Bounds.Min.X
		}
		return a.Bounds.Min.Y < b.Bounds.Min.Y
	})
}

// FilterNoise returns the silhouettes whose area is at least ratio of the
// frame area. The input order is preserved.
func FilterNoise(silhouettes []Silhouette, frame image.Rectangle, ratio float64) []Silhouette {
	minArea := ratio * float64(frame.Dx()*frame.Dy())
	kept := make([]Silhouette, 0, len(silhouettes))
	for _, s := range silhouettes {
		if s.Area >= minArea {
			kept = append(kept, s)
		}
	}
	return kept
}

func boundsOf(points []image.Point) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: points[0], Max: points[0].Add(image.Pt(1, 1))}
	for _, p := range points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}
