package media

import "math"

// DefaultDPI converts the inch-based slide geometry into pixel dimensions for
// image-generation requests.
const DefaultDPI = 150

const (
	ModeFill = "fill"
	ModeFit  = "fit"
)

// Box is an image placement area on a slide, in inches.
type Box struct {
	Left float64 `json:"left" yaml:"left"`
	Top  float64 `json:"top" yaml:"top"`
	W    float64 `json:"w" yaml:"w"`
	H    float64 `json:"h" yaml:"h"`
}

// DefaultImageBox is the right-hand image area used when a slide carries no
// explicit box.
var DefaultImageBox = Box{Left: 6.2, Top: 1.0, W: 3.5, H: 4.5}

// Placement is the resolved geometry for one image in one box. Crop is in
// source pixels (the full image in fit mode); Left/Top/W/H are the inches the
// scaled image finally occupies on the slide.
type Placement struct {
	Mode  string
	CropX int
	CropY int
	CropW int
	CropH int
	Left  float64
	Top   float64
	W     float64
	H     float64
}

// PlaceImage computes the placement of an image with intrinsic pixel
// dimensions (iw, ih) into box under the given mode. Fill crops the centered
// region matching the box aspect ratio and fills the box exactly; fit scales
// without cropping and centers the result, leaving symmetric letterbox margin
// on the shorter axis. Pure arithmetic: identical inputs always yield
// identical placements.
func PlaceImage(iw, ih int, box Box, mode string) Placement {
	if mode == ModeFill {
		return placeFill(iw, ih, box)
	}
	return placeFit(iw, ih, box)
}

func placeFill(iw, ih int, box Box) Placement {
	targetRatio := box.W / box.H
	imageRatio := float64(iw) / float64(ih)
	p := Placement{
		Mode: ModeFill,
		Left: box.Left,
		Top:  box.Top,
		W:    box.W,
		H:    box.H,
	}
	if imageRatio > targetRatio {
		// Too wide: crop horizontally, keep the full height.
		newW := int(math.Round(float64(ih) * targetRatio))
		p.CropX = (iw - newW) / 2
		p.CropY = 0
		p.CropW = newW
		p.CropH = ih
	} else {
		newH := int(math.Round(float64(iw) / targetRatio))
		p.CropX = 0
		p.CropY = (ih - newH) / 2
		p.CropW = iw
		p.CropH = newH
	}
	return p
}

func placeFit(iw, ih int, box Box) Placement {
	imageRatio := float64(iw) / float64(ih)
	boxRatio := box.W / box.H
	var usedW, usedH float64
	if imageRatio > boxRatio {
		usedW = box.W
		usedH = usedW / imageRatio
	} else {
		usedH = box.H
		usedW = usedH * imageRatio
	}
	return Placement{
		Mode:  ModeFit,
		CropX: 0,
		CropY: 0,
		CropW: iw,
		CropH: ih,
		Left:  box.Left + (box.W-usedW)/2,
		Top:   box.Top + (box.H-usedH)/2,
		W:     usedW,
		H:     usedH,
	}
}

// PixelDims is the pixel resolution requested from the image generator for a
// box rendered at dpi.
func PixelDims(box Box, dpi int) (int, int) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	w := int(math.Round(box.W * float64(dpi)))
	h := int(math.Round(box.H * float64(dpi)))
	return w, h
}
