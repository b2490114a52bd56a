package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// EdgeParams controls the denoise and edge stages that feed contour
// extraction.
type EdgeParams struct {
	// BlurKernel is the odd kernel width of the heavy blur used to estimate
	// scene illumination. Typical: 25.
	BlurKernel int `json:"blur_kernel"`

	// SmoothKernel is the odd kernel width of the light blur applied after
	// illumination correction. Typical: 7.
	SmoothKernel int `json:"smooth_kernel"`

	// LowThreshold and HighThreshold are the Canny hysteresis thresholds on
	// the gradient magnitude of 0-255 intensities. Typical: 50 and 100.
	LowThreshold  float64 `json:"low_threshold"`
	HighThreshold float64 `json:"high_threshold"`
}

// EdgeMap runs the full edge pipeline on img and returns a binary map in
// which 255 marks an edge pixel:
//
//  1. Grayscale conversion (BT.601 luminance)
//  2. Illumination correction: divide by a heavily blurred copy, rescaled to 255
//  3. Light Gaussian blur
//  4. Canny edge detection
//  5. One dilation then one erosion to close small gaps
//
// The returned image has its origin at (0,0) regardless of img's bounds.
// img is never modified.
func EdgeMap(img image.Image, p EdgeParams) *image.Gray {
	gray := Grayscale(img)
	corrected := CorrectIllumination(gray, p.BlurKernel)
	smoothed := Smooth(corrected, p.SmoothKernel)
	edges := Canny(smoothed, p.LowThreshold, p.HighThreshold)
	return CloseGaps(edges)
}

// Grayscale converts img to single-channel intensity with a (0,0) origin.
func Grayscale(img image.Image) *image.Gray {
	return toGray(imaging.Grayscale(img))
}

// CorrectIllumination flattens uneven lighting by dividing each pixel by a
// Gaussian-blurred copy of the image and rescaling to 0-255. Pixels whose
// blurred value is zero map to zero.
func CorrectIllumination(gray *image.Gray, kernel int) *image.Gray {
	background := toGray(blur.Gaussian(gray, kernelRadius(kernel)))

	bounds := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			g := float64(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			b := float64(background.GrayAt(x, y).Y)
			if b == 0 {
				continue
			}
			out.SetGray(x, y, color.Gray{Y: clampByte(math.Round(g * 255 / b))})
		}
	}
	return out
}

// Smooth applies a light Gaussian blur with the given odd kernel width.
func Smooth(gray *image.Gray, kernel int) *image.Gray {
	return toGray(blur.Gaussian(gray, kernelRadius(kernel)))
}

// CloseGaps dilates then erodes a binary edge map once, joining edge
// fragments separated by a pixel without changing the overall outline.
func CloseGaps(edges *image.Gray) *image.Gray {
	dilated := effect.Dilate(edges, 1)
	closed := toGray(effect.Erode(dilated, 1))

	// Re-binarize: the rank filters work per channel on RGBA
	for i, v := range closed.Pix {
		if v >= 128 {
			closed.Pix[i] = 255
		} else {
			closed.Pix[i] = 0
		}
	}
	return closed
}

// kernelRadius converts an odd kernel width to the radius bild expects.
func kernelRadius(kernel int) float64 {
	if kernel <= 1 {
		return 0
	}
	return float64(kernel-1) / 2
}

// toGray copies the first channel of img into a zero-origin Gray image.
// Inputs produced by the grayscale and blur stages carry equal channels.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < bounds.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+bounds.Dx()], src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):])
		}
	case *image.RGBA:
		for y := 0; y < bounds.Dy(); y++ {
			for x := 0; x < bounds.Dx(); x++ {
				out.Pix[y*out.Stride+x] = src.Pix[src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
			}
		}
	case *image.NRGBA:
		for y := 0; y < bounds.Dy(); y++ {
			for x := 0; x < bounds.Dx(); x++ {
				out.Pix[y*out.Stride+x] = src.Pix[src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
			}
		}
	default:
		for y := 0; y < bounds.Dy(); y++ {
			for x := 0; x < bounds.Dx(); x++ {
				r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				out.Pix[y*out.Stride+x] = uint8(r >> 8)
			}
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
