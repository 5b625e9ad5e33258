package media

import (
	"bytes"
	"context"
	"hash/fnv"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/slideforge/slideforge-backend/internal/platform/logger"
)

// PlaceholderGenerator draws a flat educational card for a prompt instead of
// calling a remote image service. Output is deterministic for a given
// (prompt, width, height): the background color is derived from the prompt
// hash and nothing else varies.
type PlaceholderGenerator struct {
	log      *logger.Logger
	fontFace font.Face
	palette  []color.NRGBA
}

var placeholderPalette = []color.NRGBA{
	{R: 0x3B, G: 0x6E, B: 0xA5, A: 0xFF},
	{R: 0x4C, G: 0x8C, B: 0x5C, A: 0xFF},
	{R: 0x9A, G: 0x5B, B: 0x8F, A: 0xFF},
	{R: 0xB0, G: 0x6A, B: 0x3F, A: 0xFF},
	{R: 0x54, G: 0x6A, B: 0x7B, A: 0xFF},
	{R: 0x7A, G: 0x4F, B: 0x9E, A: 0xFF},
}

// NewPlaceholderGenerator loads an optional caption font from
// PLACEHOLDER_FONT_PATH. Without a font the card is drawn without text, which
// keeps the generator usable in minimal runtimes.
func NewPlaceholderGenerator(baseLog *logger.Logger) *PlaceholderGenerator {
	g := &PlaceholderGenerator{
		log:     baseLog.With("component", "PlaceholderGenerator"),
		palette: placeholderPalette,
	}
	fontPath := strings.TrimSpace(os.Getenv("PLACEHOLDER_FONT_PATH"))
	if fontPath == "" {
		return g
	}
	face, err := loadFontFace(fontPath, 28)
	if err != nil {
		g.log.Warn("could not load placeholder font, cards will have no caption", "path", fontPath, "error", err)
		return g
	}
	g.fontFace = face
	return g
}

func (g *PlaceholderGenerator) Generate(ctx context.Context, prompt string, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = 512
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(g.backgroundFor(prompt))
	dc.Clear()

	w := float64(width)
	h := float64(height)

	// Caption band along the bottom.
	dc.SetRGBA(0, 0, 0, 0.25)
	dc.DrawRectangle(0, h*0.72, w, h*0.28)
	dc.Fill()

	// Simple motif so a deck full of placeholders is visually distinguishable.
	dc.SetRGBA(1, 1, 1, 0.35)
	dc.DrawCircle(w*0.5, h*0.38, h*0.2)
	dc.SetLineWidth(6)
	dc.Stroke()

	if g.fontFace != nil && strings.TrimSpace(prompt) != "" {
		dc.SetFontFace(g.fontFace)
		dc.SetRGB(1, 1, 1)
		dc.DrawStringWrapped(prompt, w*0.5, h*0.86, 0.5, 0.5, w*0.9, 1.3, gg.AlignCenter)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *PlaceholderGenerator) backgroundFor(prompt string) color.NRGBA {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(prompt))
	return g.palette[int(hash.Sum32())%len(g.palette)]
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}
