package media

import (
	"math"
	"testing"
)

func TestPlaceImage_FillCropsWideImage(t *testing.T) {
	box := Box{Left: 6.2, Top: 1.0, W: 3.5, H: 4.5}
	p := PlaceImage(1024, 768, box, ModeFill)
	// 768 * (3.5/4.5) = 597.33 -> 597
	if p.CropW != 597 || p.CropH != 768 {
		t.Fatalf("unexpected crop %dx%d", p.CropW, p.CropH)
	}
	if p.CropX != (1024-597)/2 || p.CropY != 0 {
		t.Fatalf("crop not centered horizontally: %+v", p)
	}
	if p.Left != box.Left || p.Top != box.Top || p.W != box.W || p.H != box.H {
		t.Fatalf("fill mode must occupy the whole box: %+v", p)
	}
}

func TestPlaceImage_FillCropsTallImage(t *testing.T) {
	box := Box{Left: 0, Top: 0, W: 3.5, H: 4.5}
	p := PlaceImage(500, 1000, box, ModeFill)
	// 500 / (3.5/4.5) = 642.86 -> 643
	if p.CropW != 500 || p.CropH != 643 {
		t.Fatalf("unexpected crop %dx%d", p.CropW, p.CropH)
	}
	if p.CropY != (1000-643)/2 || p.CropX != 0 {
		t.Fatalf("crop not centered vertically: %+v", p)
	}
}

func TestPlaceImage_FitLetterboxesTallImage(t *testing.T) {
	box := Box{Left: 1, Top: 1, W: 4, H: 2}
	p := PlaceImage(100, 100, box, ModeFit)
	if p.CropX != 0 || p.CropY != 0 || p.CropW != 100 || p.CropH != 100 {
		t.Fatalf("fit mode must not crop: %+v", p)
	}
	if p.W != 2 || p.H != 2 {
		t.Fatalf("expected 2x2in used area, got %gx%g", p.W, p.H)
	}
	if p.Left != 2 || p.Top != 1 {
		t.Fatalf("expected horizontal centering at left=2, got %+v", p)
	}
}

func TestPlaceImage_FitLetterboxesWideImage(t *testing.T) {
	box := Box{Left: 1, Top: 1, W: 4, H: 2}
	p := PlaceImage(300, 100, box, ModeFit)
	if p.W != 4 {
		t.Fatalf("width should pin to the box, got %g", p.W)
	}
	wantH := 4.0 / 3.0
	if math.Abs(p.H-wantH) > 1e-9 {
		t.Fatalf("expected height %g, got %g", wantH, p.H)
	}
	wantTop := 1 + (2-wantH)/2
	if math.Abs(p.Top-wantTop) > 1e-9 {
		t.Fatalf("expected top %g, got %g", wantTop, p.Top)
	}
}

func TestPlaceImage_Deterministic(t *testing.T) {
	box := Box{Left: 0.5, Top: 0.25, W: 5.25, H: 3.75}
	for _, mode := range []string{ModeFill, ModeFit} {
		a := PlaceImage(1333, 777, box, mode)
		b := PlaceImage(1333, 777, box, mode)
		if a != b {
			t.Fatalf("placement not reproducible in %s mode: %+v vs %+v", mode, a, b)
		}
	}
}

func TestPixelDims(t *testing.T) {
	w, h := PixelDims(Box{W: 3.5, H: 4.5}, DefaultDPI)
	if w != 525 || h != 675 {
		t.Fatalf("expected 525x675, got %dx%d", w, h)
	}
	w, h = PixelDims(Box{W: 3.5, H: 4.5}, 0)
	if w != 525 || h != 675 {
		t.Fatalf("dpi<=0 should use the default, got %dx%d", w, h)
	}
}
