package slides

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Structural bounds enforced on sanitized slides.
const (
	MaxTitleChars    = 100
	MaxBulletChars   = 80
	MinBullets       = 1
	MaxBullets       = 6
	MaxImages        = 3
	BulletWordLimit  = 12
	CaptionWordLimit = 20
)

// ValidateLenient checks only that the recovered payload carries a list-typed
// "slides" key. Callers log the returned error as a warning; it never stops
// the pipeline.
func ValidateLenient(obj map[string]any) error {
	raw, ok := obj["slides"]
	if !ok {
		return fmt.Errorf("payload has no %q key", "slides")
	}
	if _, ok := raw.([]any); !ok {
		return fmt.Errorf("%q is not an array", "slides")
	}
	return nil
}

// ValidateSanitized enforces the full sanitized-slide shape. A non-nil return
// after sanitization signals a sanitizer defect, not bad model output: the
// sanitizer is defined to always produce conformant slides.
func ValidateSanitized(sanitized []SanitizedSlide) *SlideValidationError {
	var issues []Issue
	add := func(path, message string) {
		issues = append(issues, Issue{Path: path, Message: message})
	}
	for i, slide := range sanitized {
		prefix := "slides/" + strconv.Itoa(i)
		if slide.Title == "" {
			add(prefix+"/title", "is empty")
		}
		if len([]rune(slide.Title)) > MaxTitleChars {
			add(prefix+"/title", fmt.Sprintf("exceeds %d characters", MaxTitleChars))
		}
		switch {
		case len(slide.Bullets) < MinBullets:
			add(prefix+"/bullets", fmt.Sprintf("has fewer than %d entries", MinBullets))
		case len(slide.Bullets) > MaxBullets:
			add(prefix+"/bullets", fmt.Sprintf("has more than %d entries", MaxBullets))
		}
		for j, bullet := range slide.Bullets {
			if len([]rune(bullet)) > MaxBulletChars {
				add(fmt.Sprintf("%s/bullets/%d", prefix, j), fmt.Sprintf("exceeds %d characters", MaxBulletChars))
			}
		}
		if len(slide.Images) > MaxImages {
			add(prefix+"/images", fmt.Sprintf("has more than %d entries", MaxImages))
		}
	}
	if len(issues) == 0 {
		return nil
	}
	sort.Slice(issues, func(a, b int) bool {
		return pathLess(issues[a].Path, issues[b].Path)
	})
	return &SlideValidationError{Issues: issues}
}

// pathLess orders slash paths segment-wise, comparing numeric segments as
// numbers so slides/2 sorts before slides/10.
func pathLess(a, b string) bool {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			return an < bn
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}
