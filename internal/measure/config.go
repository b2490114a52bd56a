package measure

import (
	"math"

	"github.com/ironsheep/object-measure-mcp/internal/detection"
	"github.com/ironsheep/object-measure-mcp/internal/imaging"
)

// MatchMode selects how the fuser compares edge lengths across views.
type MatchMode string

const (
	// MatchAbsolute accepts edges whose lengths differ by at most the
	// tolerance in pixels.
	MatchAbsolute MatchMode = "absolute"

	// MatchRelative accepts edges whose lengths differ by at most the
	// tolerance times the front-view edge length.
	MatchRelative MatchMode = "relative"
)

// Side selects which horizontal position marks the reference object.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Config holds the tunables of the measurement pipeline.
type Config struct {
	BlurKernel     int     `json:"blur_kernel"`
	SmoothKernel   int     `json:"smooth_kernel"`
	EdgeLowThresh  float64 `json:"edge_low_thresh"`
	EdgeHighThresh float64 `json:"edge_high_thresh"`

	// MinAreaRatio is the smallest silhouette, as a fraction of the frame,
	// that counts as an object.
	MinAreaRatio float64 `json:"min_area_ratio"`

	MatchTolerance float64   `json:"match_tolerance"`
	MatchMode      MatchMode `json:"match_mode"`

	// ReferenceSide is where the reference object sits in both photographs.
	ReferenceSide Side `json:"reference_side"`

	// AllowExtraObjects keeps the two largest silhouettes when more than two
	// are found instead of failing.
	AllowExtraObjects bool `json:"allow_extra_objects"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	p := detection.DefaultParams()
	return Config{
		BlurKernel:     p.Edges.BlurKernel,
		SmoothKernel:   p.Edges.SmoothKernel,
		EdgeLowThresh:  p.Edges.LowThreshold,
		EdgeHighThresh: p.Edges.HighThreshold,
		MinAreaRatio:   p.MinAreaRatio,
		MatchTolerance: 100,
		MatchMode:      MatchAbsolute,
		ReferenceSide:  SideLeft,
	}
}

// Validate checks c for values the pipeline cannot run with.
func (c Config) Validate() error {
	for _, k := range []struct {
		name  string
		value int
	}{
		{"blur_kernel", c.BlurKernel},
		{"smooth_kernel", c.SmoothKernel},
	} {
		if k.value <= 0 || k.value%2 == 0 {
			return invalidInput("config", "%s must be a positive odd number, got %d", k.name, k.value)
		}
	}

	if math.IsNaN(c.EdgeLowThresh) || math.IsNaN(c.EdgeHighThresh) || c.EdgeLowThresh < 0 || c.EdgeHighThresh < 0 {
		return invalidInput("config", "edge thresholds must be non-negative, got %g/%g", c.EdgeLowThresh, c.EdgeHighThresh)
	}
	if c.EdgeLowThresh > c.EdgeHighThresh {
		return invalidInput("config", "edge_low_thresh %g exceeds edge_high_thresh %g", c.EdgeLowThresh, c.EdgeHighThresh)
	}
	if math.IsNaN(c.MinAreaRatio) || c.MinAreaRatio < 0 || c.MinAreaRatio >= 1 {
		return invalidInput("config", "min_area_ratio must be in [0, 1), got %g", c.MinAreaRatio)
	}

	if err := c.Tolerance().Validate(); err != nil {
		return err
	}

	switch c.ReferenceSide {
	case SideLeft, SideRight:
	default:
		return invalidInput("config", "unknown reference_side %q", c.ReferenceSide)
	}
	return nil
}

// Tolerance returns the edge-matching policy.
func (c Config) Tolerance() Tolerance {
	return Tolerance{Mode: c.MatchMode, Value: c.MatchTolerance}
}

// DetectionParams returns the extractor settings.
func (c Config) DetectionParams() detection.Params {
	return detection.Params{
		Edges: imaging.EdgeParams{
			BlurKernel:    c.BlurKernel,
			SmoothKernel:  c.SmoothKernel,
			LowThreshold:  c.EdgeLowThresh,
			HighThreshold: c.EdgeHighThresh,
		},
		MinAreaRatio: c.MinAreaRatio,
	}
}

// Tolerance is the policy for deciding that two edge lengths describe the
// same physical edge.
type Tolerance struct {
	Mode  MatchMode `json:"mode"`
	Value float64   `json:"value"`
}

// Validate checks the mode and that the value is usable for it. Relative
// tolerances are fractions and must not exceed 1.
func (t Tolerance) Validate() error {
	if math.IsNaN(t.Value) || t.Value < 0 {
		return invalidInput("config", "match_tolerance must be non-negative, got %g", t.Value)
	}
	switch t.Mode {
	case MatchAbsolute:
	case MatchRelative:
		if t.Value > 1 {
			return invalidInput("config", "relative match_tolerance must be at most 1, got %g", t.Value)
		}
	default:
		return invalidInput("config", "unknown match_mode %q", t.Mode)
	}
	return nil
}
