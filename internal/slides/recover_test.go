package slides

import (
	"errors"
	"testing"
)

func TestExtractJSON_DirectObject(t *testing.T) {
	obj, err := ExtractJSON(`{"slides": []}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := obj["slides"]; !ok {
		t.Fatalf("expected slides key, got %v", obj)
	}
}

func TestExtractJSON_EmbeddedInProse(t *testing.T) {
	text := `Sure! Here is your deck.` + "\n" + `{"meta": {"presentation_title": "Cells"}, "slides": [{"title": "Intro"}]}` + "\nHope that helps."
	obj, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta, ok := obj["meta"].(map[string]any)
	if !ok || meta["presentation_title"] != "Cells" {
		t.Fatalf("unexpected meta: %v", obj["meta"])
	}
}

func TestExtractJSON_FencedBlock(t *testing.T) {
	text := "```json\n{\"slides\": []}\n```"
	obj, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := obj["slides"].([]any)
	if !ok || len(list) != 0 {
		t.Fatalf("expected empty slides array, got %v", obj["slides"])
	}
}

func TestExtractJSON_StrayCloserBeforeOpen(t *testing.T) {
	text := `weird } preamble {"slides": [{"title": "A"}]}`
	if _, err := ExtractJSON(text); err != nil {
		t.Fatalf("stray closer should be ignored, got %v", err)
	}
}

func TestExtractJSON_GreedyFirstMatch(t *testing.T) {
	text := `Example: {"example": true} and the real payload {"slides": [{"title": "B"}]}`
	obj, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First balanced object that parses wins, even when a later one looks
	// more like the real payload.
	if _, ok := obj["example"]; !ok {
		t.Fatalf("expected first object to win, got %v", obj)
	}
}

func TestExtractJSON_SkipsUnparsableCandidates(t *testing.T) {
	text := `{not json} then {"slides": []}`
	obj, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := obj["slides"]; !ok {
		t.Fatalf("expected recovery to skip to the parsable object, got %v", obj)
	}
}

func TestExtractJSON_Failures(t *testing.T) {
	for _, in := range []string{"", "   ", "no json here at all", "{never closes"} {
		_, err := ExtractJSON(in)
		var rerr *RecoveryError
		if !errors.As(err, &rerr) {
			t.Fatalf("ExtractJSON(%q): expected *RecoveryError, got %v", in, err)
		}
	}
}
