package detection

import (
	"errors"
	"image"

	"github.com/ironsheep/object-measure-mcp/internal/imaging"
)

// ErrEmptyImage is returned when a photograph has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// EdgeExtractor finds silhouettes with the pure Go edge pipeline in
// package imaging followed by outer-boundary tracing.
type EdgeExtractor struct {
	params Params
}

// NewEdgeExtractor returns an extractor using p.
func NewEdgeExtractor(p Params) *EdgeExtractor {
	return &EdgeExtractor{params: p}
}

// Params returns the extractor's configuration.
func (e *EdgeExtractor) Params() Params {
	return e.params
}

// Extract returns the outer silhouettes in img, largest first, after
// dropping those below the noise floor.
func (e *EdgeExtractor) Extract(img image.Image) ([]Silhouette, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	edges := imaging.EdgeMap(img, e.params.Edges)
	silhouettes := TraceExternal(edges, img.Bounds().Min)
	Rank(silhouettes)

	return FilterNoise(silhouettes, img.Bounds(), e.params.MinAreaRatio), nil
}
