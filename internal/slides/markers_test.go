package slides

import "testing"

func TestExtractMarkers(t *testing.T) {
	text := "Intro [IMAGE:a cell diagram] middle [IMAGE_RIGHT: Marie Curie portrait ] end"
	markers := ExtractMarkers(text)
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	first := markers[0]
	if first.Token != "IMAGE" || first.Description != "a cell diagram" {
		t.Fatalf("unexpected first marker: %+v", first)
	}
	if text[first.Start:first.End] != first.Marker {
		t.Fatalf("span does not address the marker: %+v", first)
	}
	second := markers[1]
	if second.Token != "IMAGE_RIGHT" || second.Description != "Marie Curie portrait" {
		t.Fatalf("unexpected second marker: %+v", second)
	}
	if second.Start <= first.End {
		t.Fatalf("markers out of order: %+v", markers)
	}
}

func TestExtractMarkers_CaseSensitiveToken(t *testing.T) {
	if got := ExtractMarkers("[image:lowercase is not a marker]"); len(got) != 0 {
		t.Fatalf("lowercase token must not match, got %v", got)
	}
	if got := ExtractMarkers("[IMAGE_right:mixed suffix]"); len(got) != 0 {
		t.Fatalf("lowercase suffix must not match, got %v", got)
	}
}

func TestExtractMarkers_NoMatches(t *testing.T) {
	if got := ExtractMarkers("plain text"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if got := ExtractMarkers(""); len(got) != 0 {
		t.Fatalf("expected empty result for empty text, got %v", got)
	}
}
