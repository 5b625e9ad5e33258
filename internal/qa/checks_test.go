package qa

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"

	"github.com/slideforge/slideforge-backend/internal/render"
)

func buildDeck(t *testing.T, slides ...render.SlideDoc) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	manifest := render.Manifest{Title: "Test Deck", SlideCount: len(slides), Generator: "slideforge"}
	writeXML(t, zw, "deck.xml", manifest)
	for i, slide := range slides {
		writeXML(t, zw, fmt.Sprintf("slides/slide%d.xml", i+1), slide)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func writeXML(t *testing.T, zw *zip.Writer, name string, doc any) {
	t.Helper()
	raw, err := xml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	entry, err := zw.Create(name)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	if _, err := entry.Write(raw); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestCheckNoLeakedTokens_CleanDeck(t *testing.T) {
	deck := buildDeck(t,
		render.SlideDoc{Index: 1, Shapes: []render.Shape{
			{Kind: "title", Paragraphs: []string{"Photosynthesis"}},
			{Kind: "body", Paragraphs: []string{"Plants convert light to energy", "Chlorophyll absorbs sunlight"}},
		}},
	)
	leaks, err := CheckNoLeakedTokens(deck)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leaks) != 0 {
		t.Fatalf("clean deck flagged: %v", leaks)
	}
}

func TestCheckNoLeakedTokens_FlagsRawJSON(t *testing.T) {
	deck := buildDeck(t,
		render.SlideDoc{Index: 1, Shapes: []render.Shape{
			{Kind: "title", Paragraphs: []string{"Intro"}},
		}},
		render.SlideDoc{Index: 2, Shapes: []render.Shape{
			{Kind: "body", Paragraphs: []string{`{"slides": [`}},
		}},
	)
	leaks, err := CheckNoLeakedTokens(deck)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leaks) == 0 {
		t.Fatalf("raw JSON fragment not flagged")
	}
	for _, leak := range leaks {
		if leak.Slide != 2 {
			t.Fatalf("leak attributed to slide %d, want 2", leak.Slide)
		}
	}
}

func TestCheckNoLeakedTokens_ScansNotesShapes(t *testing.T) {
	deck := buildDeck(t,
		render.SlideDoc{Index: 1, Shapes: []render.Shape{
			{Kind: "title", Paragraphs: []string{"Summary"}},
			{Kind: "notes", Paragraphs: []string{`remember the "slides": key was removed`}},
		}},
	)
	leaks, err := CheckNoLeakedTokens(deck)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, leak := range leaks {
		if leak.Token == `"slides":` && leak.Slide == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("notes leak not reported, got %v", leaks)
	}
}

func TestCheckNoLeakedTokens_SnippetLength(t *testing.T) {
	long := "Notes: " + strings.Repeat("x", 200)
	deck := buildDeck(t,
		render.SlideDoc{Index: 1, Shapes: []render.Shape{
			{Kind: "body", Paragraphs: []string{long}},
		}},
	)
	leaks, err := CheckNoLeakedTokens(deck)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leaks) == 0 {
		t.Fatalf("expected a leak")
	}
	if got := len([]rune(leaks[0].Snippet)); got > 80 {
		t.Fatalf("snippet too long: %d runes", got)
	}
}

func TestCheckBulletCeiling(t *testing.T) {
	many := make([]string, 9)
	for i := range many {
		many[i] = "line"
	}
	deck := buildDeck(t,
		render.SlideDoc{Index: 1, Shapes: []render.Shape{
			{Kind: "title", Paragraphs: []string{"Fine"}},
			{Kind: "body", Paragraphs: []string{"one", "two", "three"}},
		}},
		render.SlideDoc{Index: 2, Shapes: []render.Shape{
			{Kind: "body", Paragraphs: many},
		}},
	)
	overflows, err := CheckBulletCeiling(deck, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overflows) != 1 {
		t.Fatalf("expected one overflow, got %v", overflows)
	}
	if overflows[0].Slide != 2 || overflows[0].Count != 9 {
		t.Fatalf("unexpected overflow %+v", overflows[0])
	}
}

func TestCheckBulletCeiling_IgnoresBlankParagraphs(t *testing.T) {
	deck := buildDeck(t,
		render.SlideDoc{Index: 1, Shapes: []render.Shape{
			{Kind: "body", Paragraphs: []string{"a", "", "  ", "b"}},
		}},
	)
	overflows, err := CheckBulletCeiling(deck, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overflows) != 0 {
		t.Fatalf("blank paragraphs counted toward the ceiling: %v", overflows)
	}
}

func TestChecks_RejectCorruptArchive(t *testing.T) {
	if _, err := CheckNoLeakedTokens([]byte("not a zip")); err == nil {
		t.Fatalf("expected error for corrupt archive")
	}
	if _, err := CheckBulletCeiling([]byte("not a zip"), 6); err == nil {
		t.Fatalf("expected error for corrupt archive")
	}
}
