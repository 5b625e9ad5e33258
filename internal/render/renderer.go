package render

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/slideforge/slideforge-backend/internal/config"
	"github.com/slideforge/slideforge-backend/internal/media"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/slides"
)

// Renderer turns an assembled deck into a downloadable archive. One image is
// generated per slide from its image prompt; a failed generation degrades to
// a slide without a picture rather than failing the export.
type Renderer struct {
	log *logger.Logger
	gen media.Generator
	cfg config.RenderConfig
}

func NewRenderer(baseLog *logger.Logger, gen media.Generator, cfg config.RenderConfig) *Renderer {
	return &Renderer{
		log: baseLog.With("component", "DeckRenderer"),
		gen: gen,
		cfg: cfg,
	}
}

type slideImage struct {
	data      []byte
	placement media.Placement
}

// Render builds the deck archive and returns its bytes plus a suggested
// download filename.
func (r *Renderer) Render(ctx context.Context, deck *slides.Deck) ([]byte, string, error) {
	if deck == nil || len(deck.Slides) == 0 {
		return nil, "", fmt.Errorf("deck has no slides")
	}

	ws, err := media.NewWorkspace()
	if err != nil {
		return nil, "", err
	}
	defer ws.Cleanup()

	images := make([]*slideImage, len(deck.Slides))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.MaxConcurrentImages)
	for i := range deck.Slides {
		group.Go(func() error {
			img, ierr := r.slideImage(groupCtx, ws, i+1, deck.Slides[i])
			if ierr != nil {
				// A missing picture is an acceptable degradation; the
				// deck must still export.
				r.log.Warn("image generation failed for slide", "slide", i+1, "error", ierr)
				return nil
			}
			images[i] = img
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, "", err
	}

	title := metaString(deck.Meta, "presentation_title", "AI Presentation")
	subtitle := metaString(deck.Meta, "subtitle", "Generated automatically")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	aw := &archiveWriter{zw: zw}

	manifest := Manifest{
		Title:      title,
		Subtitle:   subtitle,
		SlideCount: len(deck.Slides) + 1,
		Generator:  "slideforge",
	}
	if err := aw.writeXML("deck.xml", manifest); err != nil {
		return nil, "", err
	}
	if err := aw.writeXML("slides/slide1.xml", titleSlide(title, subtitle)); err != nil {
		return nil, "", err
	}
	for i, slide := range deck.Slides {
		doc := r.contentSlide(i+2, slide, images[i])
		if err := aw.writeXML(fmt.Sprintf("slides/slide%d.xml", i+2), doc); err != nil {
			return nil, "", err
		}
		if images[i] != nil {
			name := fmt.Sprintf("media/image%d.png", i+2)
			if err := aw.writeRaw(name, images[i].data); err != nil {
				return nil, "", err
			}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize deck archive: %w", err)
	}
	filename := strings.ReplaceAll(title, " ", "_") + ".deck"
	return buf.Bytes(), filename, nil
}

// slideImage generates, crops, and scales the picture for one slide. The
// cropped intermediate is parked in the build workspace under a slide-unique
// name so concurrent builds never collide.
func (r *Renderer) slideImage(ctx context.Context, ws *media.Workspace, number int, slide slides.AssembledSlide) (*slideImage, error) {
	prompt := strings.TrimSpace(slide.ImagePrompt)
	if prompt == "" {
		prompt = slide.Title
	}
	reqW, reqH := media.PixelDims(slide.ImageBox, r.cfg.DPI)
	raw, err := r.gen.Generate(ctx, prompt, reqW, reqH)
	if err != nil {
		return nil, err
	}
	img, err := media.DecodeImage(raw)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	placement := media.PlaceImage(bounds.Dx(), bounds.Dy(), slide.ImageBox, slide.ImageMode)
	placed, err := media.ApplyPlacement(img, placement, r.cfg.DPI)
	if err != nil {
		return nil, err
	}
	data, err := media.EncodePNG(placed)
	if err != nil {
		return nil, err
	}
	if _, err := ws.WriteCrop(number, data); err != nil {
		return nil, err
	}
	return &slideImage{data: data, placement: placement}, nil
}

func titleSlide(title, subtitle string) SlideDoc {
	return SlideDoc{
		Index:  1,
		Layout: 0,
		Shapes: []Shape{
			{Kind: "title", Paragraphs: []string{slides.CleanText(title)}},
			{Kind: "subtitle", Paragraphs: []string{slides.CleanText(subtitle)}},
		},
	}
}

func (r *Renderer) contentSlide(number int, slide slides.AssembledSlide, img *slideImage) SlideDoc {
	doc := SlideDoc{
		Index:  number,
		Layout: r.cfg.LayoutFor(slide.Template),
	}
	doc.Shapes = append(doc.Shapes, Shape{Kind: "title", Paragraphs: []string{slides.CleanText(slide.Title)}})
	body := Shape{Kind: "body"}
	for _, bullet := range slide.Bullets {
		body.Paragraphs = append(body.Paragraphs, slides.CleanText(bullet))
	}
	doc.Shapes = append(doc.Shapes, body)
	if notes := slides.CleanText(slide.Notes); notes != "" {
		doc.Shapes = append(doc.Shapes, Shape{Kind: "notes", Paragraphs: []string{notes}})
	}
	if img != nil {
		doc.Pictures = append(doc.Pictures, Picture{
			Src:    fmt.Sprintf("media/image%d.png", number),
			Left:   img.placement.Left,
			Top:    img.placement.Top,
			Width:  img.placement.W,
			Height: img.placement.H,
		})
	}
	return doc
}

func metaString(meta map[string]any, key, def string) string {
	if meta != nil {
		if s, ok := meta[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}
