package measure

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/object-measure-mcp/internal/detection"
	"github.com/ironsheep/object-measure-mcp/internal/imaging"
)

// Measurer runs the measurement pipeline. It holds only configuration and
// is safe for concurrent use.
type Measurer struct {
	cfg       Config
	extractor detection.Extractor
}

// New returns a Measurer using the default extractor for this build.
func New(cfg Config) (*Measurer, error) {
	return NewWithExtractor(cfg, detection.NewExtractor(cfg.DetectionParams()))
}

// NewWithExtractor returns a Measurer that finds silhouettes with ext.
func NewWithExtractor(cfg Config, ext detection.Extractor) (*Measurer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ext == nil {
		return nil, invalidInput("config", "extractor is nil")
	}
	return &Measurer{cfg: cfg, extractor: ext}, nil
}

// Config returns the configuration m was built with.
func (m *Measurer) Config() Config {
	return m.cfg
}

// Measure estimates the real size of the target object from a top-down and
// a front photograph, each showing the reference and the target.
func (m *Measurer) Measure(top, front image.Image, ref CalibrationRef) (Measurement, error) {
	res, err := m.MeasureDetailed(top, front, ref)
	if err != nil {
		return Measurement{}, err
	}
	return res.Measurement, nil
}

// MeasureDetailed is Measure, also returning the per-view observations and
// the intermediate pixel sizes and scale.
//
// The two photographs are processed concurrently. When both fail, the top
// view's error is returned.
func (m *Measurer) MeasureDetailed(top, front image.Image, ref CalibrationRef) (*Result, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	images := [2]image.Image{top, front}
	views := [2]View{ViewTop, ViewFront}
	var obs [2]ViewObservation
	var errs [2]error

	var g errgroup.Group
	for i := range views {
		g.Go(func() error {
			obs[i], errs[i] = m.ObserveView(images[i], views[i])
			return errs[i]
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	return Resolve(obs[0], obs[1], ref, m.cfg.Tolerance())
}

// Resolve fuses the reference and target across the two views and
// calibrates the target against the reference.
func Resolve(top, front ViewObservation, ref CalibrationRef, tol Tolerance) (*Result, error) {
	refPx, err := Fuse(top.Reference, front.Reference, tol)
	if err != nil {
		return nil, withRole(err, RoleReference)
	}
	targetPx, err := Fuse(top.Target, front.Target, tol)
	if err != nil {
		return nil, withRole(err, RoleTarget)
	}

	scale, err := Scale(refPx, ref)
	if err != nil {
		return nil, err
	}

	return &Result{
		Measurement: Apply(scale, targetPx),
		Reference:   refPx,
		Target:      targetPx,
		Scale:       scale,
		Top:         top,
		Front:       front,
	}, nil
}

// Extents returns the measured extent of every object silhouette in img,
// largest first.
func (m *Measurer) Extents(img image.Image) ([]OrientedExtent, error) {
	silhouettes, err := m.extractor.Extract(img)
	if err != nil {
		return nil, err
	}
	return MeasureSilhouettes(silhouettes), nil
}

// ObserveView finds the reference and target in one photograph.
func (m *Measurer) ObserveView(img image.Image, view View) (ViewObservation, error) {
	extents, err := m.Extents(img)
	if err != nil {
		return ViewObservation{}, &Error{Op: "extract", View: view, Kind: KindInvalidInput, Err: err}
	}

	n := len(extents)
	if n < 2 || (n > 2 && !m.cfg.AllowExtraObjects) {
		return ViewObservation{}, &Error{
			Op:   "extract",
			View: view,
			Kind: KindInsufficientObjects,
			Err:  fmt.Errorf("expected 2 objects, found %d", n),
		}
	}

	return Disambiguate(extents[0], extents[1], m.cfg.ReferenceSide), nil
}

// CropTarget crops img to the target object's bounding box grown by margin
// pixels.
func (m *Measurer) CropTarget(img image.Image, view View, margin int) (image.Image, image.Rectangle, error) {
	obs, err := m.ObserveView(img, view)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return imaging.CropAround(img, obs.Target.Bounds, margin, 1)
}

func withRole(err error, role Role) error {
	if me, ok := err.(*Error); ok {
		tagged := *me
		tagged.Role = role
		return &tagged
	}
	return err
}
