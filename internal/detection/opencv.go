//go:build gocv

package detection

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"
)

// Backend names the extractor implementation compiled into this binary.
const Backend = "opencv"

// NewExtractor returns the OpenCV-backed extractor.
func NewExtractor(p Params) Extractor {
	return &OpenCVExtractor{params: p}
}

// OpenCVExtractor runs the same pipeline as EdgeExtractor on OpenCV.
type OpenCVExtractor struct {
	params Params
}

// Extract returns the outer silhouettes in img, largest first.
func (e *OpenCVExtractor) Extract(img image.Image) ([]Silhouette, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	mat, err := gocv.NewMatFromBytes(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to create mat: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)

	edges := e.edgeMap(gray)
	defer edges.Close()

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()

	silhouettes := make([]Silhouette, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		points := contour.ToPoints()
		for j := range points {
			points[j] = points[j].Add(bounds.Min)
		}
		silhouettes = append(silhouettes, Silhouette{
			Points: points,
			Area:   gocv.ContourArea(contour),
			Bounds: boundsOf(points),
		})
	}

	Rank(silhouettes)
	return FilterNoise(silhouettes, bounds, e.params.MinAreaRatio), nil
}

func (e *OpenCVExtractor) edgeMap(gray gocv.Mat) gocv.Mat {
	p := e.params.Edges

	// Illumination correction: gray * 255 / blur(gray), 0 where the blur is 0
	background := gocv.NewMat()
	defer background.Close()
	gocv.GaussianBlur(gray, &background, image.Pt(p.BlurKernel, p.BlurKernel), 0, 0, gocv.BorderDefault)

	lit := gocv.NewMat()
	defer lit.Close()
	gocv.Threshold(background, &lit, 0, 255, gocv.ThresholdBinary)

	grayF := gocv.NewMat()
	defer grayF.Close()
	gray.ConvertTo(&grayF, gocv.MatTypeCV32F)

	backgroundF := gocv.NewMat()
	defer backgroundF.Close()
	background.ConvertTo(&backgroundF, gocv.MatTypeCV32F)

	ratio := gocv.NewMat()
	defer ratio.Close()
	gocv.Divide(grayF, backgroundF, &ratio)
	ratio.MultiplyFloat(255)

	corrected := gocv.NewMat()
	defer corrected.Close()
	ratio.ConvertTo(&corrected, gocv.MatTypeCV8U)
	gocv.BitwiseAnd(corrected, lit, &corrected)

	smoothed := gocv.NewMat()
	defer smoothed.Close()
	gocv.GaussianBlur(corrected, &smoothed, image.Pt(p.SmoothKernel, p.SmoothKernel), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	gocv.Canny(smoothed, &edges, float32(p.LowThreshold), float32(p.HighThreshold))

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()
	gocv.Dilate(edges, &edges, kernel)
	gocv.Erode(edges, &edges, kernel)

	return edges
}
