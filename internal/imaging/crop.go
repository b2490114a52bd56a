package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodedImage is an image serialized as base64 PNG for transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG serializes img as base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// CropAround extracts region grown by margin pixels on every side, clipped
// to the image bounds, and optionally rescales the result.
//
// The returned rectangle is the region actually cropped, in img coordinates.
// A scale of 0 or 1 leaves the crop at native resolution.
func CropAround(img image.Image, region image.Rectangle, margin int, scale float64) (image.Image, image.Rectangle, error) {
	bounds := img.Bounds()
	if margin < 0 {
		return nil, image.Rectangle{}, fmt.Errorf("margin must be non-negative, got %d", margin)
	}

	grown := image.Rect(region.Min.X-margin, region.Min.Y-margin, region.Max.X+margin, region.Max.Y+margin)
	clipped := grown.Intersect(bounds)
	if clipped.Empty() {
		return nil, image.Rectangle{}, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	var cropped image.Image = imaging.Crop(img, clipped)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(clipped.Dx()) * scale)
		newHeight := int(float64(clipped.Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, image.Rectangle{}, fmt.Errorf("scale %.3f collapses %dx%d crop", scale, clipped.Dx(), clipped.Dy())
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return cropped, clipped, nil
}
