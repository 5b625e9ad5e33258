package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/slideforge/slideforge-backend/internal/config"
	"github.com/slideforge/slideforge-backend/internal/media"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/slides"
)

type stubGenerator struct {
	failPrompts map[string]bool
	calls       int
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, width, height int) ([]byte, error) {
	s.calls++
	if s.failPrompts[prompt] {
		return nil, errors.New("generation refused")
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 120, G: 40, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func testRenderer(t *testing.T, gen media.Generator) *Renderer {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewRenderer(log, gen, config.Default())
}

func sampleDeck() *slides.Deck {
	return &slides.Deck{
		Meta: map[string]any{"presentation_title": "The Water Cycle"},
		Slides: []slides.AssembledSlide{
			{
				Title:       "Evaporation",
				Bullets:     []string{"Sun heats surface water", "Vapor rises into the air"},
				Notes:       "Mention lakes and oceans.",
				Template:    "title_content",
				ImagePrompt: "sun over a lake",
				ImageBox:    media.DefaultImageBox,
				ImageMode:   media.ModeFill,
			},
			{
				Title:     "Condensation",
				Bullets:   []string{"Vapor cools into droplets"},
				Template:  "title_content",
				ImageBox:  media.DefaultImageBox,
				ImageMode: media.ModeFit,
			},
		},
	}
}

func TestRender_ArchiveShape(t *testing.T) {
	gen := &stubGenerator{}
	r := testRenderer(t, gen)
	data, filename, err := r.Render(context.Background(), sampleDeck())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename != "The_Water_Cycle.deck" {
		t.Fatalf("unexpected filename %q", filename)
	}

	archive, err := ReadDeck(data)
	if err != nil {
		t.Fatalf("round-trip failed: %v", err)
	}
	if archive.Manifest.Title != "The Water Cycle" {
		t.Fatalf("unexpected manifest title %q", archive.Manifest.Title)
	}
	if archive.Manifest.SlideCount != 3 {
		t.Fatalf("expected 3 slides (title + 2 content), got %d", archive.Manifest.SlideCount)
	}
	if len(archive.Slides) != 3 {
		t.Fatalf("expected 3 slide documents, got %d", len(archive.Slides))
	}
	if archive.Slides[0].Index != 1 || archive.Slides[0].Shapes[0].Kind != "title" {
		t.Fatalf("first document must be the title slide, got %+v", archive.Slides[0])
	}

	content := archive.Slides[1]
	if content.Shapes[0].Text() != "Evaporation" {
		t.Fatalf("unexpected content title %q", content.Shapes[0].Text())
	}
	if len(content.Pictures) != 1 {
		t.Fatalf("expected a picture on slide 2, got %d", len(content.Pictures))
	}
	if _, ok := archive.Media[content.Pictures[0].Src]; !ok {
		t.Fatalf("picture source %q missing from media entries", content.Pictures[0].Src)
	}
	if gen.calls != 2 {
		t.Fatalf("expected one generation per content slide, got %d", gen.calls)
	}
}

func TestRender_NotesCarriedIntoShapes(t *testing.T) {
	r := testRenderer(t, &stubGenerator{})
	data, _, err := r.Render(context.Background(), sampleDeck())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	archive, err := ReadDeck(data)
	if err != nil {
		t.Fatalf("round-trip failed: %v", err)
	}
	found := false
	for _, shape := range archive.Slides[1].Shapes {
		if shape.Kind == "notes" && strings.Contains(shape.Text(), "lakes and oceans") {
			found = true
		}
	}
	if !found {
		t.Fatalf("notes shape missing from content slide")
	}
}

func TestRender_DegradesWhenImageFails(t *testing.T) {
	gen := &stubGenerator{failPrompts: map[string]bool{"sun over a lake": true}}
	r := testRenderer(t, gen)
	data, _, err := r.Render(context.Background(), sampleDeck())
	if err != nil {
		t.Fatalf("image failure must not fail the export: %v", err)
	}
	archive, err := ReadDeck(data)
	if err != nil {
		t.Fatalf("round-trip failed: %v", err)
	}
	if len(archive.Slides[1].Pictures) != 0 {
		t.Fatalf("failed slide should render without a picture")
	}
	if len(archive.Slides[2].Pictures) != 1 {
		t.Fatalf("unaffected slide lost its picture")
	}
}

func TestRender_PromptFallsBackToTitle(t *testing.T) {
	gen := &stubGenerator{failPrompts: map[string]bool{"Condensation": true}}
	r := testRenderer(t, gen)
	data, _, err := r.Render(context.Background(), sampleDeck())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	archive, err := ReadDeck(data)
	if err != nil {
		t.Fatalf("round-trip failed: %v", err)
	}
	if len(archive.Slides[2].Pictures) != 0 {
		t.Fatalf("slide without an explicit prompt must fall back to its title")
	}
}

func TestRender_RejectsEmptyDeck(t *testing.T) {
	r := testRenderer(t, &stubGenerator{})
	if _, _, err := r.Render(context.Background(), &slides.Deck{}); err == nil {
		t.Fatalf("expected error for empty deck")
	}
	if _, _, err := r.Render(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil deck")
	}
}

func TestRender_DefaultTitleWhenMetaMissing(t *testing.T) {
	deck := sampleDeck()
	deck.Meta = nil
	r := testRenderer(t, &stubGenerator{})
	data, filename, err := r.Render(context.Background(), deck)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename != "AI_Presentation.deck" {
		t.Fatalf("unexpected fallback filename %q", filename)
	}
	archive, err := ReadDeck(data)
	if err != nil {
		t.Fatalf("round-trip failed: %v", err)
	}
	if archive.Manifest.Title != "AI Presentation" {
		t.Fatalf("unexpected fallback title %q", archive.Manifest.Title)
	}
}
