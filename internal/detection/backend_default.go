//go:build !gocv

package detection

// Backend names the extractor implementation compiled into this binary.
const Backend = "go"

// NewExtractor returns the default extractor for this build.
func NewExtractor(p Params) Extractor {
	return NewEdgeExtractor(p)
}
