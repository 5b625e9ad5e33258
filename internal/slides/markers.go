package slides

import (
	"regexp"
	"strings"
)

var imageMarkerRE = regexp.MustCompile(`\[(IMAGE(?:_[A-Z]+)?):([^\]]+)\]`)

// ImageMarker is one inline image-placement token found in free text, e.g.
// [IMAGE:a labelled cell diagram] or [IMAGE_RIGHT:portrait of Marie Curie].
// Start and End are byte offsets into the scanned text so a caller can strip
// or replace the marker in place without re-scanning.
type ImageMarker struct {
	Marker      string `json:"marker"`
	Token       string `json:"token"`
	Description string `json:"description"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}

// ExtractMarkers scans text for image markers in left-to-right order. It
// never fails; text without markers yields an empty slice.
func ExtractMarkers(text string) []ImageMarker {
	matches := imageMarkerRE.FindAllStringSubmatchIndex(text, -1)
	markers := make([]ImageMarker, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, ImageMarker{
			Marker:      text[m[0]:m[1]],
			Token:       text[m[2]:m[3]],
			Description: strings.TrimSpace(text[m[4]:m[5]]),
			Start:       m[0],
			End:         m[1],
		})
	}
	return markers
}
