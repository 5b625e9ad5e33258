package media

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// ApplyPlacement materializes a placement: the crop window is cut out of img
// and scaled to the pixel size of the placed area at dpi. In fit mode the
// crop window is the whole image, so this is a pure scale.
func ApplyPlacement(img image.Image, p Placement, dpi int) (*image.RGBA, error) {
	if p.CropW <= 0 || p.CropH <= 0 {
		return nil, fmt.Errorf("empty crop window %dx%d", p.CropW, p.CropH)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	outW := int(math.Round(p.W * float64(dpi)))
	outH := int(math.Round(p.H * float64(dpi)))
	if outW <= 0 || outH <= 0 {
		return nil, fmt.Errorf("degenerate output size %dx%d", outW, outH)
	}
	bounds := img.Bounds()
	crop := image.Rect(
		bounds.Min.X+p.CropX,
		bounds.Min.Y+p.CropY,
		bounds.Min.X+p.CropX+p.CropW,
		bounds.Min.Y+p.CropY+p.CropH,
	).Intersect(bounds)
	if crop.Empty() {
		return nil, fmt.Errorf("crop window %v outside image bounds %v", crop, bounds)
	}
	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(out, out.Bounds(), img, crop, draw.Src, nil)
	return out, nil
}

// DecodeImage decodes PNG/JPEG/GIF bytes into an image.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodePNG encodes an image as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
