package slides

import "regexp"

var sentenceSplitRE = regexp.MustCompile(`[.;–—-]`)

// genericBullet is the last-resort bullet when no usable text survives
// cleaning.
const genericBullet = "Key insight"

// SanitizePayload validates that the recovered object carries a "slides" key
// and normalizes every slide independently: bounded title, 1..6 bullets of at
// most 12 words each (synthesized from notes or title when the model supplied
// none), cleaned notes, and at most 3 cleaned image annotations. The result
// is re-checked against the strict schema; a failure there is a sanitizer
// defect and is returned as-is.
func SanitizePayload(obj map[string]any) ([]SanitizedSlide, error) {
	if obj == nil {
		return nil, &SlideValidationError{Issues: []Issue{{Path: "root", Message: "payload must contain a 'slides' array"}}}
	}
	if _, ok := obj["slides"]; !ok {
		return nil, &SlideValidationError{Issues: []Issue{{Path: "root", Message: "payload must contain a 'slides' array"}}}
	}
	payload := PayloadFromMap(obj)
	sanitized := make([]SanitizedSlide, 0, len(payload.Slides))
	for _, raw := range payload.Slides {
		sanitized = append(sanitized, sanitizeSlide(raw))
	}
	if verr := ValidateSanitized(sanitized); verr != nil {
		return nil, verr
	}
	return sanitized, nil
}

func sanitizeSlide(raw RawSlide) SanitizedSlide {
	title := CleanText(raw.Title)
	if r := []rune(title); len(r) > MaxTitleChars {
		title = string(r[:MaxTitleChars])
	}
	notes := CleanText(raw.Notes)
	source := notes
	if source == "" {
		source = title
	}
	bullets := normalizeBullets(raw.Bullets, source)
	if title == "" {
		title = "Slide"
	}
	return SanitizedSlide{
		Title:   title,
		Bullets: bullets,
		Notes:   notes,
		Images:  sanitizeImages(raw.Images),
	}
}

func normalizeBullets(raw []string, fallbackSource string) []string {
	bullets := make([]string, 0, MaxBullets)
	for _, bullet := range raw {
		text := CleanText(bullet)
		if text == "" {
			continue
		}
		bullets = append(bullets, truncateWords(text, BulletWordLimit))
		if len(bullets) == MaxBullets {
			break
		}
	}
	if len(bullets) == 0 {
		bullets = fallbackBullets(fallbackSource)
	}
	return bullets
}

// fallbackBullets derives bullets from free-form text when the model omitted
// them: split on sentence-ish delimiters, clean each fragment, keep the first
// three that survive.
func fallbackBullets(source string) []string {
	if source == "" {
		return []string{genericBullet}
	}
	bullets := make([]string, 0, 3)
	for _, fragment := range sentenceSplitRE.Split(source, -1) {
		cleaned := CleanText(fragment)
		if cleaned == "" {
			continue
		}
		bullets = append(bullets, truncateWords(cleaned, BulletWordLimit))
		if len(bullets) >= 3 {
			break
		}
	}
	if len(bullets) == 0 {
		return []string{genericBullet}
	}
	return bullets
}

func sanitizeImages(images []RawImage) []SanitizedImage {
	sanitized := make([]SanitizedImage, 0, len(images))
	for _, img := range images {
		source := img.Caption
		if source == "" {
			source = img.ID
		}
		caption := CleanText(source)
		entry := SanitizedImage{ID: CleanText(img.ID)}
		if caption != "" {
			entry.Caption = truncateWords(caption, CaptionWordLimit)
		}
		if entry.ID == "" && entry.Caption == "" {
			continue
		}
		sanitized = append(sanitized, entry)
	}
	if len(sanitized) > MaxImages {
		sanitized = sanitized[:MaxImages]
	}
	return sanitized
}
