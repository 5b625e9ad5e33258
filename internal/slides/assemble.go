package slides

import (
	"fmt"

	"github.com/slideforge/slideforge-backend/internal/media"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
)

// fallbackBullet set used for synthesized placeholder slides.
var fallbackSlideBullets = []string{
	"Key concept overview",
	"Supporting detail or fact",
	"Classroom example",
}

// Assembler merges recovered metadata and sanitized slides into a fixed-size
// deck. It is the only stage that pads: when the model under-delivers it
// appends synthesized placeholder slides until the requested count is met. It
// never removes slides when the model over-delivers.
type Assembler struct {
	log *logger.Logger

	DefaultTemplate string
	DefaultBox      media.Box
	DefaultMode     string
}

func NewAssembler(baseLog *logger.Logger) *Assembler {
	return &Assembler{
		log:             baseLog.With("component", "DeckAssembler"),
		DefaultTemplate: "title_content",
		DefaultBox:      media.DefaultImageBox,
		DefaultMode:     media.ModeFill,
	}
}

// Assemble converts raw model text into a deck. desiredSlideCount <= 0 means
// "whatever the model produced". Only a *RecoveryError propagates: every
// other fault degrades to synthesized placeholder content, because the caller
// always needs some presentable deck.
func (a *Assembler) Assemble(rawText string, desiredSlideCount int) (*Deck, error) {
	obj, err := ExtractJSON(rawText)
	if err != nil {
		return nil, err
	}
	if lerr := ValidateLenient(obj); lerr != nil {
		a.log.Warn("slide payload failed lenient validation", "error", lerr)
	}
	payload := PayloadFromMap(obj)
	sanitized, serr := SanitizePayload(obj)
	if serr != nil {
		a.log.Warn("sanitizer rejected slide payload", "error", serr)
		sanitized = nil
	}

	assembled := make([]AssembledSlide, 0, len(payload.Slides))
	for idx, raw := range payload.Slides {
		base := fallbackSanitized(idx + 1)
		if idx < len(sanitized) {
			base = sanitized[idx]
		}
		assembled = append(assembled, a.assembleSlide(base, raw))
	}

	target := desiredSlideCount
	if target <= 0 {
		target = len(assembled)
	}
	for len(assembled) < target {
		assembled = append(assembled, a.fallbackAssembled(len(assembled)+1))
	}
	if len(assembled) == 0 {
		assembled = append(assembled, a.fallbackAssembled(1))
	}
	return &Deck{Meta: payload.Meta, Slides: assembled}, nil
}

// assembleSlide combines a sanitized slide with the slide-local overrides the
// model carried on the raw slide.
func (a *Assembler) assembleSlide(base SanitizedSlide, raw RawSlide) AssembledSlide {
	images := base.Images
	if len(images) == 0 {
		images = []SanitizedImage{{Caption: base.Title}}
	}

	prompt := raw.ImagePrompt
	if prompt == "" {
		prompt = images[0].Caption
	}
	if prompt == "" {
		prompt = base.Title
	}

	template := raw.Template
	if template == "" {
		template = a.DefaultTemplate
	}
	box := a.DefaultBox
	if raw.ImageBox != nil {
		box = *raw.ImageBox
	}
	mode := raw.ImageMode
	if mode == "" {
		mode = a.DefaultMode
	}
	return AssembledSlide{
		Title:       base.Title,
		Bullets:     base.Bullets,
		Notes:       base.Notes,
		Images:      images,
		Template:    template,
		ImagePrompt: CleanText(prompt),
		ImageBox:    box,
		ImageMode:   mode,
	}
}

func (a *Assembler) fallbackAssembled(index int) AssembledSlide {
	base := fallbackSanitized(index)
	return AssembledSlide{
		Title:       base.Title,
		Bullets:     base.Bullets,
		Notes:       base.Notes,
		Images:      base.Images,
		Template:    a.DefaultTemplate,
		ImagePrompt: base.Title,
		ImageBox:    a.DefaultBox,
		ImageMode:   a.DefaultMode,
	}
}

func fallbackSanitized(index int) SanitizedSlide {
	title := fmt.Sprintf("Topic %d", index)
	bullets := make([]string, len(fallbackSlideBullets))
	copy(bullets, fallbackSlideBullets)
	return SanitizedSlide{
		Title:   title,
		Bullets: bullets,
		Notes:   "",
		Images:  []SanitizedImage{{Caption: title}},
	}
}
