package slides

import (
	"strconv"

	"github.com/slideforge/slideforge-backend/internal/media"
)

// RawSlide is whatever the model sent for one slide, coerced into a typed
// record at the recovery boundary. Nothing here is trusted: any field may be
// empty, oversized, or missing.
type RawSlide struct {
	Title       string
	Bullets     []string
	Notes       string
	Images      []RawImage
	Template    string
	ImagePrompt string
	ImageBox    *media.Box
	ImageMode   string
}

type RawImage struct {
	ID      string
	Caption string
}

// Payload is the typed form of the first recovered JSON object. HasSlides
// records whether the "slides" key existed at all, which the sanitizer treats
// as fatal when absent.
type Payload struct {
	Meta      map[string]any
	Slides    []RawSlide
	HasSlides bool
}

// SanitizedSlide is a slide after sanitization. Invariant: title is non-empty
// and at most 100 characters, bullets holds 1..6 entries of at most 12 words,
// images holds at most 3 entries.
type SanitizedSlide struct {
	Title   string           `json:"title"`
	Bullets []string         `json:"bullets"`
	Notes   string           `json:"notes"`
	Images  []SanitizedImage `json:"images"`
}

type SanitizedImage struct {
	ID      string `json:"id,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// AssembledSlide is a sanitized slide merged with its slide-local rendering
// overrides. Built once by the assembler and never mutated afterward.
type AssembledSlide struct {
	Title       string           `json:"title"`
	Bullets     []string         `json:"bullets"`
	Notes       string           `json:"notes"`
	Images      []SanitizedImage `json:"images"`
	Template    string           `json:"template"`
	ImagePrompt string           `json:"image_prompt"`
	ImageBox    media.Box        `json:"image_box_inches"`
	ImageMode   string           `json:"image_mode"`
}

// Deck is the terminal artifact of the pipeline; ownership passes to the
// renderer.
type Deck struct {
	Meta   map[string]any   `json:"meta"`
	Slides []AssembledSlide `json:"slides"`
}

// PayloadFromMap coerces a recovered JSON object into a typed Payload.
// Non-string bullets and non-mapping image entries are dropped; a slide entry
// that is not a mapping becomes an empty RawSlide so that slide indexes stay
// aligned with the model's output.
func PayloadFromMap(obj map[string]any) Payload {
	p := Payload{Meta: map[string]any{}}
	if obj == nil {
		return p
	}
	// Models emit deck metadata either nested under "meta" or flat at the
	// top level; accept both, nested winning on key collisions.
	for k, v := range obj {
		if k == "slides" || k == "meta" {
			continue
		}
		p.Meta[k] = v
	}
	if meta, ok := obj["meta"].(map[string]any); ok {
		for k, v := range meta {
			p.Meta[k] = v
		}
	}
	raw, ok := obj["slides"]
	p.HasSlides = ok
	list, ok := raw.([]any)
	if !ok {
		return p
	}
	p.Slides = make([]RawSlide, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			p.Slides = append(p.Slides, RawSlide{})
			continue
		}
		p.Slides = append(p.Slides, rawSlideFromMap(entry))
	}
	return p
}

func rawSlideFromMap(m map[string]any) RawSlide {
	s := RawSlide{
		Title:       coerceString(m["title"]),
		Notes:       coerceString(m["notes"]),
		Template:    coerceString(m["template"]),
		ImagePrompt: coerceString(m["image_prompt"]),
		ImageMode:   coerceString(m["image_mode"]),
	}
	if bullets, ok := m["bullets"].([]any); ok {
		for _, b := range bullets {
			if text, ok := b.(string); ok {
				s.Bullets = append(s.Bullets, text)
			}
		}
	}
	if images, ok := m["images"].([]any); ok {
		for _, entry := range images {
			img, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			s.Images = append(s.Images, RawImage{
				ID:      coerceString(img["id"]),
				Caption: coerceString(img["caption"]),
			})
		}
	}
	if box, ok := m["image_box_inches"].(map[string]any); ok {
		s.ImageBox = boxFromMap(box)
	}
	return s
}

// boxFromMap fills missing box fields from the default box, matching the
// per-key defaulting the renderer applies.
func boxFromMap(m map[string]any) *media.Box {
	box := media.DefaultImageBox
	if v, ok := coerceFloat(m["left"]); ok {
		box.Left = v
	}
	if v, ok := coerceFloat(m["top"]); ok {
		box.Top = v
	}
	if v, ok := coerceFloat(m["w"]); ok {
		box.W = v
	}
	if v, ok := coerceFloat(m["h"]); ok {
		box.H = v
	}
	return &box
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func coerceFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
