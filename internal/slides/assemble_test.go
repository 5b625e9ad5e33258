package slides

import (
	"errors"
	"strings"
	"testing"

	"github.com/slideforge/slideforge-backend/internal/media"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
)

func testAssembler(t *testing.T) *Assembler {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewAssembler(log)
}

func TestAssemble_NoisyPayloadWithPadding(t *testing.T) {
	raw := `Noise before the payload... {"meta": {"presentation_title": "Photosynthesis deck"}, ` +
		`"slides": [{"title": "Intro", "bullets": ["Explain process", "Mention chlorophyll"], "notes": "Notes: keep it simple"}]}`
	deck, err := testAssembler(t).Assemble(raw, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck.Meta["presentation_title"] != "Photosynthesis deck" {
		t.Fatalf("meta lost: %v", deck.Meta)
	}
	if len(deck.Slides) != 3 {
		t.Fatalf("expected padded deck of 3, got %d", len(deck.Slides))
	}
	first := deck.Slides[0]
	if first.Title != "Intro" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if strings.HasPrefix(first.Notes, "Notes") {
		t.Fatalf("notes label leaked: %q", first.Notes)
	}
	if first.Template != "title_content" || first.ImageMode != media.ModeFill {
		t.Fatalf("defaults not applied: %+v", first)
	}
	for i, s := range deck.Slides[1:] {
		if !strings.HasPrefix(s.Title, "Topic ") {
			t.Fatalf("padding slide %d has title %q", i+2, s.Title)
		}
		if len(s.Bullets) != 3 {
			t.Fatalf("padding slide %d has %d bullets", i+2, len(s.Bullets))
		}
	}
}

func TestAssemble_FencedEmptySlides(t *testing.T) {
	raw := "```json\n{\"slides\": []}\n```"
	deck, err := testAssembler(t).Assemble(raw, 0)
	if err != nil {
		t.Fatalf("balanced JSON inside a fence must not raise: %v", err)
	}
	if len(deck.Slides) != 1 {
		t.Fatalf("empty payload should yield exactly one fallback slide, got %d", len(deck.Slides))
	}
	if deck.Slides[0].Title != "Topic 1" {
		t.Fatalf("unexpected fallback slide title %q", deck.Slides[0].Title)
	}
}

func TestAssemble_NeverTruncatesOverflow(t *testing.T) {
	raw := `{"slides": [` +
		`{"title": "A", "bullets": ["a"]},` +
		`{"title": "B", "bullets": ["b"]},` +
		`{"title": "C", "bullets": ["c"]},` +
		`{"title": "D", "bullets": ["d"]}]}`
	deck, err := testAssembler(t).Assemble(raw, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deck.Slides) != 4 {
		t.Fatalf("overflow must be kept, got %d slides", len(deck.Slides))
	}
}

func TestAssemble_SlideLocalOverrides(t *testing.T) {
	raw := `{"slides": [{
		"title": "Diagram",
		"bullets": ["one"],
		"template": "image_fullbleed",
		"image_prompt": "a labelled chloroplast",
		"image_mode": "fit",
		"image_box_inches": {"left": 1, "top": 2, "w": 8, "h": 4}
	}]}`
	deck, err := testAssembler(t).Assemble(raw, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := deck.Slides[0]
	if s.Template != "image_fullbleed" || s.ImageMode != media.ModeFit {
		t.Fatalf("overrides not applied: %+v", s)
	}
	if s.ImagePrompt != "a labelled chloroplast" {
		t.Fatalf("unexpected prompt %q", s.ImagePrompt)
	}
	if s.ImageBox != (media.Box{Left: 1, Top: 2, W: 8, H: 4}) {
		t.Fatalf("unexpected box %+v", s.ImageBox)
	}
}

func TestAssemble_ImagePromptFallsBackToCaptionThenTitle(t *testing.T) {
	raw := `{"slides": [
		{"title": "With caption", "bullets": ["x"], "images": [{"caption": "mitochondria close-up"}]},
		{"title": "Bare", "bullets": ["y"]}
	]}`
	deck, err := testAssembler(t).Assemble(raw, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck.Slides[0].ImagePrompt != "mitochondria close-up" {
		t.Fatalf("expected caption-derived prompt, got %q", deck.Slides[0].ImagePrompt)
	}
	if deck.Slides[1].ImagePrompt != "Bare" {
		t.Fatalf("expected title-derived prompt, got %q", deck.Slides[1].ImagePrompt)
	}
	if len(deck.Slides[1].Images) != 1 || deck.Slides[1].Images[0].Caption != "Bare" {
		t.Fatalf("expected synthesized image caption, got %v", deck.Slides[1].Images)
	}
}

func TestAssemble_DegradesWhenSlidesNotAList(t *testing.T) {
	raw := `{"slides": "oops", "meta": {"presentation_title": "Broken"}}`
	deck, err := testAssembler(t).Assemble(raw, 2)
	if err != nil {
		t.Fatalf("degraded build should not raise: %v", err)
	}
	if len(deck.Slides) != 2 {
		t.Fatalf("expected 2 padded slides, got %d", len(deck.Slides))
	}
	if deck.Meta["presentation_title"] != "Broken" {
		t.Fatalf("meta should survive degraded builds: %v", deck.Meta)
	}
}

func TestAssemble_RecoveryErrorOnUnparseableInput(t *testing.T) {
	for _, raw := range []string{"", "pure prose without structure", "{broken"} {
		_, err := testAssembler(t).Assemble(raw, 3)
		var rerr *RecoveryError
		if !errors.As(err, &rerr) {
			t.Fatalf("Assemble(%q): expected *RecoveryError, got %v", raw, err)
		}
	}
}

func TestAssemble_PaddingInvariant(t *testing.T) {
	raw := `{"slides": [{"title": "Only", "bullets": ["b"]}]}`
	for n := 1; n <= 8; n++ {
		deck, err := testAssembler(t).Assemble(raw, n)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(deck.Slides) != n {
			t.Fatalf("desired %d, got %d slides", n, len(deck.Slides))
		}
	}
}
