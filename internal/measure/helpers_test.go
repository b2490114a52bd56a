package measure

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ironsheep/object-measure-mcp/internal/detection"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// ignoreGeometry compares only the fields the pipeline reasons about.
var ignoreGeometry = cmpopts.IgnoreFields(OrientedExtent{}, "Area", "Corners", "Bounds")

func extent(a, b, cx float64) OrientedExtent {
	return OrientedExtent{EdgeA: a, EdgeB: b, CentroidX: cx}
}

// rectSilhouette returns the four-corner boundary of an axis-aligned
// rectangle w wide and h tall.
func rectSilhouette(x, y, w, h int) detection.Silhouette {
	pts := []image.Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	return detection.Silhouette{
		Points: pts,
		Area:   float64(w * h),
		Bounds: image.Rect(x, y, x+w+1, y+h+1),
	}
}

// stubExtractor returns canned silhouettes per image.
type stubExtractor struct {
	mu    sync.Mutex
	byImg map[image.Image][]detection.Silhouette
	calls int
}

func newStubExtractor() *stubExtractor {
	return &stubExtractor{byImg: make(map[image.Image][]detection.Silhouette)}
}

func (s *stubExtractor) add(sils ...detection.Silhouette) image.Image {
	img := image.NewGray(image.Rect(0, 0, 1, 1+len(s.byImg)))
	s.byImg[img] = sils
	return img
}

func (s *stubExtractor) Extract(img image.Image) ([]detection.Silhouette, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	sils, ok := s.byImg[img]
	if !ok {
		return nil, errors.New("unknown image")
	}
	return sils, nil
}

// scene draws black rectangles on a white photograph.
func scene(width, height int, rects ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

