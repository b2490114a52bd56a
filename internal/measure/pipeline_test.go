package measure

import (
	"errors"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/object-measure-mcp/internal/detection"
)

func newStubMeasurer(t *testing.T, cfg Config, ext detection.Extractor) *Measurer {
	t.Helper()
	m, err := NewWithExtractor(cfg, ext)
	if err != nil {
		t.Fatalf("NewWithExtractor failed: %v", err)
	}
	return m
}

func TestResolve_TwoViewExample(t *testing.T) {
	top := ViewObservation{Reference: extent(100, 50, 30), Target: extent(80, 40, 70)}
	front := ViewObservation{Reference: extent(50, 60, 30), Target: extent(40, 45, 70)}

	res, err := Resolve(top, front, CalibrationRef{RealDims: [3]float64{10, 5, 6}}, Tolerance{Mode: MatchAbsolute, Value: 5})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if diff := cmp.Diff(Fused3D{100, 50, 60}, res.Reference, approx); diff != "" {
		t.Errorf("reference (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Fused3D{80, 40, 45}, res.Target, approx); diff != "" {
		t.Errorf("target (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([3]float64{8, 4, 4.5}, res.Measurement.RealDims, approx); diff != "" {
		t.Errorf("measurement (-want +got):\n%s", diff)
	}
}

func TestResolve_ErrorNamesObject(t *testing.T) {
	top := ViewObservation{Reference: extent(100, 50, 30), Target: extent(80, 40, 70)}
	front := ViewObservation{Reference: extent(50, 60, 30), Target: extent(400, 450, 70)}

	_, err := Resolve(top, front, CalibrationRef{RealDims: [3]float64{1, 1, 1}}, Tolerance{Mode: MatchAbsolute, Value: 5})
	if !errors.Is(err, ErrDimensionMatch) {
		t.Fatalf("got %v, want ErrDimensionMatch", err)
	}
	if !strings.HasPrefix(err.Error(), "target object: fuse: ") {
		t.Errorf("message %q should name the target", err)
	}
}

func TestMeasure_StubbedViews(t *testing.T) {
	ext := newStubExtractor()
	// Silhouettes listed by area; the reference is on the left in both
	top := ext.add(rectSilhouette(200, 10, 80, 40), rectSilhouette(10, 10, 50, 50))
	front := ext.add(rectSilhouette(200, 10, 80, 30), rectSilhouette(10, 10, 50, 50))

	cfg := DefaultConfig()
	cfg.MatchTolerance = 5
	m := newStubMeasurer(t, cfg, ext)

	got, err := m.Measure(top, front, CalibrationRef{RealDims: [3]float64{5, 5, 5}})
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if diff := cmp.Diff(Measurement{RealDims: [3]float64{4, 8, 3}}, got, approx); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMeasure_ObjectCount(t *testing.T) {
	one := []detection.Silhouette{rectSilhouette(10, 10, 50, 50)}
	two := []detection.Silhouette{rectSilhouette(200, 10, 80, 40), rectSilhouette(10, 10, 50, 50)}
	three := append(append([]detection.Silhouette{}, two...), rectSilhouette(400, 10, 5, 5))

	tests := []struct {
		name       string
		top, front []detection.Silhouette
		allowExtra bool
		wantErr    string
	}{
		{name: "none in top", top: nil, front: two, wantErr: "top view: extract: expected 2 objects, found 0"},
		{name: "one in top", top: one, front: two, wantErr: "top view: extract: expected 2 objects, found 1"},
		{name: "three in front", top: two, front: three, wantErr: "front view: extract: expected 2 objects, found 3"},
		{name: "three allowed", top: two, front: three, allowExtra: true},
		{name: "one never allowed", top: two, front: one, allowExtra: true, wantErr: "front view: extract: expected 2 objects, found 1"},
		{name: "both bad reports top", top: three, front: one, wantErr: "top view: extract: expected 2 objects, found 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := newStubExtractor()
			top := ext.add(tt.top...)
			front := ext.add(tt.front...)

			cfg := DefaultConfig()
			cfg.AllowExtraObjects = tt.allowExtra
			m := newStubMeasurer(t, cfg, ext)

			got, err := m.MeasureDetailed(top, front, CalibrationRef{RealDims: [3]float64{1, 1, 1}})
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if got != nil {
				t.Error("no partial result may be returned on failure")
			}
			if !errors.Is(err, ErrInsufficientObjects) {
				t.Fatalf("got %v, want ErrInsufficientObjects", err)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("message: got %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestMeasure_InvalidReference(t *testing.T) {
	ext := newStubExtractor()
	m := newStubMeasurer(t, DefaultConfig(), ext)

	_, err := m.Measure(ext.add(), ext.add(), CalibrationRef{RealDims: [3]float64{1, 0, 1}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if ext.calls != 0 {
		t.Errorf("extractor called %d times for an invalid reference", ext.calls)
	}
}

func TestMeasure_ExtractorFailure(t *testing.T) {
	ext := newStubExtractor()
	m := newStubMeasurer(t, DefaultConfig(), ext)
	unknown := image.NewGray(image.Rect(0, 0, 5, 5))

	_, err := m.Measure(ext.add(rectSilhouette(0, 0, 5, 5), rectSilhouette(10, 0, 5, 5)), unknown, CalibrationRef{RealDims: [3]float64{1, 1, 1}})
	if !IsKind(err, KindInvalidInput) {
		t.Fatalf("got %v, want invalid_input", err)
	}
	if !strings.HasPrefix(err.Error(), "front view: extract: ") {
		t.Errorf("message %q should name the front view", err)
	}
}

// Photographs of a 50 px cube (reference, left) and an 80x40x30 px box
// (target, right).
func cubeAndBox() (top, front *image.RGBA) {
	top = scene(400, 200, image.Rect(40, 60, 90, 110), image.Rect(200, 60, 280, 100))
	front = scene(400, 200, image.Rect(40, 80, 90, 130), image.Rect(200, 100, 280, 130))
	return top, front
}

func TestMeasure_Photographs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MatchTolerance = 5
	m, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	top, front := cubeAndBox()
	res, err := m.MeasureDetailed(top, front, CalibrationRef{RealDims: [3]float64{5, 5, 5}})
	if err != nil {
		t.Fatalf("MeasureDetailed failed: %v", err)
	}

	if res.Top.Reference.CentroidX >= res.Top.Target.CentroidX {
		t.Errorf("top view roles inverted: %+v", res.Top)
	}

	// Traced outlines sit a pixel or two outside the drawn shapes
	want := [3]float64{4, 8, 3}
	for i := range want {
		if math.Abs(res.Measurement.RealDims[i]-want[i]) > 0.35 {
			t.Errorf("axis %d: got %.3f, want about %.1f (px %v, ref px %v)",
				i, res.Measurement.RealDims[i], want[i], res.Target, res.Reference)
		}
	}
}

func TestMeasure_PhotographCounts(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	_, front := cubeAndBox()
	one := scene(400, 200, image.Rect(40, 60, 90, 110))
	three := scene(400, 200, image.Rect(20, 60, 70, 110), image.Rect(150, 60, 230, 100), image.Rect(300, 40, 360, 160))

	for name, top := range map[string]*image.RGBA{"one": one, "three": three} {
		_, err := m.Measure(top, front, CalibrationRef{RealDims: [3]float64{1, 1, 1}})
		if !IsKind(err, KindInsufficientObjects) {
			t.Errorf("%s object(s): got %v, want insufficient_objects", name, err)
		}
	}
}

func TestMeasure_Idempotent(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	top, front := cubeAndBox()
	ref := CalibrationRef{RealDims: [3]float64{5, 5, 5}}

	first, err := m.MeasureDetailed(top, front, ref)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.MeasureDetailed(top, front, ref)
	if err != nil {
		t.Fatal(err)
	}

	// Bit-identical, no tolerance
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ between runs (-first +second):\n%s", diff)
	}
}

func TestObserveView(t *testing.T) {
	ext := newStubExtractor()
	img := ext.add(rectSilhouette(200, 10, 80, 40), rectSilhouette(10, 10, 50, 50))

	for _, side := range []Side{SideLeft, SideRight} {
		cfg := DefaultConfig()
		cfg.ReferenceSide = side
		m := newStubMeasurer(t, cfg, ext)

		obs, err := m.ObserveView(img, ViewTop)
		if err != nil {
			t.Fatal(err)
		}

		want := ViewObservation{Reference: extent(50, 50, 35), Target: extent(40, 80, 240)}
		if side == SideRight {
			want.Reference, want.Target = want.Target, want.Reference
		}
		if diff := cmp.Diff(want, obs, approx, ignoreGeometry); diff != "" {
			t.Errorf("side %s (-want +got):\n%s", side, diff)
		}
	}
}

func TestCropTarget(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	top, _ := cubeAndBox()
	crop, rect, err := m.CropTarget(top, ViewTop, 10)
	if err != nil {
		t.Fatalf("CropTarget failed: %v", err)
	}

	target := image.Rect(200, 60, 280, 100)
	if !target.In(rect) {
		t.Errorf("crop %v does not contain the target %v", rect, target)
	}
	if rect.Dx() > target.Dx()+30 || rect.Dy() > target.Dy()+30 {
		t.Errorf("crop %v is much larger than the target %v", rect, target)
	}
	if crop.Bounds().Size() != rect.Size() {
		t.Errorf("crop size %v does not match rect %v", crop.Bounds().Size(), rect)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlurKernel = 24

	if _, err := New(cfg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
	if _, err := NewWithExtractor(DefaultConfig(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil extractor: got %v, want ErrInvalidInput", err)
	}
}

