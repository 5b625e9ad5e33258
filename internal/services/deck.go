package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/slideforge/slideforge-backend/internal/clients/llm"
	"github.com/slideforge/slideforge-backend/internal/media"
	"github.com/slideforge/slideforge-backend/internal/observability"
	pkgerrors "github.com/slideforge/slideforge-backend/internal/pkg/errors"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/qa"
	"github.com/slideforge/slideforge-backend/internal/render"
	"github.com/slideforge/slideforge-backend/internal/repos"
	"github.com/slideforge/slideforge-backend/internal/slides"
	"github.com/slideforge/slideforge-backend/internal/types"
)

const systemPrompt = `You are a presentation author. Respond with a single JSON object shaped as {"slides": [...]}. Each slide has "title", "bullets", and optionally "notes", "image_prompt", and "images".`

// GenerateRequest is the input for one deck generation run.
type GenerateRequest struct {
	Topic       string `json:"topic"`
	SlideCount  int    `json:"slide_count"`
	Audience    string `json:"audience"`
	RequestedBy string `json:"-"`
}

// QAReport is the acceptance-check result for an exported deck.
type QAReport struct {
	DeckID     uuid.UUID           `json:"deck_id"`
	Passed     bool                `json:"passed"`
	TokenLeaks []qa.TokenLeak      `json:"token_leaks"`
	Overflows  []qa.BulletOverflow `json:"bullet_overflows"`
}

// DeckService runs the full pipeline: model call, recovery, assembly,
// persistence, and on-demand export and QA.
type DeckService interface {
	Generate(ctx context.Context, req GenerateRequest) (*types.Deck, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Deck, []*types.GenerationEvent, error)
	List(ctx context.Context, limit int) ([]*types.Deck, error)
	Export(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	RunQA(ctx context.Context, id uuid.UUID) (*QAReport, error)
}

type deckService struct {
	log       *logger.Logger
	llm       llm.Client
	assembler *slides.Assembler
	renderer  *render.Renderer
	prompts   repos.PromptRepo
	decks     repos.DeckRepo
	events    repos.GenerationEventRepo
	assets    repos.MediaAssetRepo
}

func NewDeckService(
	baseLog *logger.Logger,
	llmClient llm.Client,
	assembler *slides.Assembler,
	renderer *render.Renderer,
	prompts repos.PromptRepo,
	decks repos.DeckRepo,
	events repos.GenerationEventRepo,
	assets repos.MediaAssetRepo,
) DeckService {
	return &deckService{
		log:       baseLog.With("service", "DeckService"),
		llm:       llmClient,
		assembler: assembler,
		renderer:  renderer,
		prompts:   prompts,
		decks:     decks,
		events:    events,
		assets:    assets,
	}
}

func (s *deckService) Generate(ctx context.Context, req GenerateRequest) (*types.Deck, error) {
	ctx, span := observability.Tracer("DeckService").Start(ctx, "generate_deck")
	defer span.End()

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic required", pkgerrors.ErrInvalidArgument)
	}
	if req.SlideCount <= 0 {
		req.SlideCount = 5
	}

	prompt, err := s.prompts.Create(ctx, nil, &types.Prompt{
		Topic:       topic,
		SlideCount:  req.SlideCount,
		Audience:    strings.TrimSpace(req.Audience),
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("persist prompt: %w", err)
	}

	rawText, err := s.llm.GenerateDeckText(ctx, systemPrompt, userPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generate deck text: %w", err)
	}

	deck, assembleErr := s.assembler.Assemble(rawText, req.SlideCount)

	record := &types.Deck{
		PromptID: prompt.ID,
		RawText:  rawText,
	}
	status := types.DeckStatusAssembled
	if assembleErr != nil {
		var recErr *slides.RecoveryError
		if !errors.As(assembleErr, &recErr) {
			return nil, assembleErr
		}
		status = types.DeckStatusFailed
		record.Status = status
		record.Title = topic
		record.Error = recErr.Error()
		if record, err = s.decks.Create(ctx, nil, record); err != nil {
			return nil, fmt.Errorf("persist deck: %w", err)
		}
		s.recordEvent(ctx, record.ID, types.EventStageRecover, false, recErr.Error(), nil)
		return record, nil
	}

	applyMarkers(deck, rawText)

	payload, err := json.Marshal(deck)
	if err != nil {
		return nil, fmt.Errorf("encode deck payload: %w", err)
	}
	record.Status = status
	record.Title = deckTitle(deck, topic)
	record.SlideCount = len(deck.Slides)
	record.Payload = datatypes.JSON(payload)
	if record, err = s.decks.Create(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("persist deck: %w", err)
	}

	s.recordEvent(ctx, record.ID, types.EventStageGenerate, true, "", map[string]any{
		"model_chars": len(rawText),
	})
	s.recordEvent(ctx, record.ID, types.EventStageAssemble, true, "", map[string]any{
		"slide_count": len(deck.Slides),
		"requested":   req.SlideCount,
	})

	s.log.Info("deck assembled",
		"deck_id", record.ID,
		"slides", len(deck.Slides),
		"requested", req.SlideCount,
	)
	return record, nil
}

func (s *deckService) GetByID(ctx context.Context, id uuid.UUID) (*types.Deck, []*types.GenerationEvent, error) {
	deck, err := s.decks.GetByID(ctx, nil, id)
	if err != nil {
		return nil, nil, pkgerrors.ErrNotFound
	}
	trail, err := s.events.GetByDeckID(ctx, nil, id)
	if err != nil {
		return nil, nil, err
	}
	return deck, trail, nil
}

func (s *deckService) List(ctx context.Context, limit int) ([]*types.Deck, error) {
	return s.decks.List(ctx, nil, limit)
}

func (s *deckService) Export(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	ctx, span := observability.Tracer("DeckService").Start(ctx, "export_deck")
	defer span.End()

	record, err := s.decks.GetByID(ctx, nil, id)
	if err != nil {
		return nil, "", pkgerrors.ErrNotFound
	}
	if record.Status == types.DeckStatusFailed {
		return nil, "", fmt.Errorf("%w: deck %s failed generation", pkgerrors.ErrInvalidArgument, id)
	}

	var deck slides.Deck
	if err := json.Unmarshal(record.Payload, &deck); err != nil {
		return nil, "", fmt.Errorf("decode deck payload: %w", err)
	}

	data, filename, err := s.renderer.Render(ctx, &deck)
	if err != nil {
		s.recordEvent(ctx, record.ID, types.EventStageRender, false, err.Error(), nil)
		return nil, "", fmt.Errorf("render deck: %w", err)
	}

	s.persistAssets(ctx, record.ID, &deck, data)
	s.recordEvent(ctx, record.ID, types.EventStageRender, true, "", map[string]any{
		"bytes": len(data),
	})
	return data, filename, nil
}

func (s *deckService) RunQA(ctx context.Context, id uuid.UUID) (*QAReport, error) {
	data, _, err := s.Export(ctx, id)
	if err != nil {
		return nil, err
	}
	leaks, err := qa.CheckNoLeakedTokens(data)
	if err != nil {
		return nil, err
	}
	overflows, err := qa.CheckBulletCeiling(data, slides.MaxBullets)
	if err != nil {
		return nil, err
	}
	return &QAReport{
		DeckID:     id,
		Passed:     len(leaks) == 0 && len(overflows) == 0,
		TokenLeaks: leaks,
		Overflows:  overflows,
	}, nil
}

// persistAssets records which slides ended up with pictures. Asset rows are
// rebuilt on every export. The container numbers content slides from 2, so
// archive slide N maps back to deck slide N-2.
func (s *deckService) persistAssets(ctx context.Context, deckID uuid.UUID, deck *slides.Deck, data []byte) {
	archive, err := render.ReadDeck(data)
	if err != nil {
		s.log.Warn("asset bookkeeping skipped", "deck_id", deckID, "error", err)
		return
	}
	if err := s.assets.DeleteByDeckID(ctx, nil, deckID); err != nil {
		s.log.Warn("asset cleanup failed", "deck_id", deckID, "error", err)
		return
	}
	var rows []*types.MediaAsset
	for _, slide := range archive.Slides {
		deckIdx := slide.Index - 2
		if deckIdx < 0 || deckIdx >= len(deck.Slides) {
			continue
		}
		src := deck.Slides[deckIdx]
		for _, pic := range slide.Pictures {
			raw, ok := archive.Media[pic.Src]
			if !ok {
				continue
			}
			img, derr := media.DecodeImage(raw)
			if derr != nil {
				continue
			}
			rows = append(rows, &types.MediaAsset{
				DeckID:     deckID,
				SlideIndex: slide.Index,
				Prompt:     src.ImagePrompt,
				Mode:       src.ImageMode,
				WidthPx:    img.Bounds().Dx(),
				HeightPx:   img.Bounds().Dy(),
				Source:     "render",
			})
		}
	}
	if _, err := s.assets.Create(ctx, nil, rows); err != nil {
		s.log.Warn("asset bookkeeping failed", "deck_id", deckID, "error", err)
	}
}

func (s *deckService) recordEvent(ctx context.Context, deckID uuid.UUID, stage string, success bool, errMsg string, detail map[string]any) {
	event := &types.GenerationEvent{
		DeckID:  deckID,
		Stage:   stage,
		Success: success,
		Error:   errMsg,
	}
	if detail != nil {
		if raw, err := json.Marshal(detail); err == nil {
			event.Detail = datatypes.JSON(raw)
		}
	}
	if _, err := s.events.Create(ctx, nil, event); err != nil {
		s.log.Warn("event bookkeeping failed", "deck_id", deckID, "stage", stage, "error", err)
	}
}

// applyMarkers lets inline [IMAGE: ...] markers in the raw model text supply
// image prompts for slides that did not set one. Marker order follows slide
// order.
func applyMarkers(deck *slides.Deck, rawText string) {
	markers := slides.ExtractMarkers(rawText)
	if len(markers) == 0 {
		return
	}
	next := 0
	for i := range deck.Slides {
		if next >= len(markers) {
			break
		}
		if strings.TrimSpace(deck.Slides[i].ImagePrompt) != "" && deck.Slides[i].ImagePrompt != deck.Slides[i].Title {
			continue
		}
		if desc := strings.TrimSpace(markers[next].Description); desc != "" {
			deck.Slides[i].ImagePrompt = slides.CleanText(desc)
		}
		next++
	}
}

func deckTitle(deck *slides.Deck, fallback string) string {
	if deck != nil {
		if title, ok := deck.Meta["presentation_title"].(string); ok && strings.TrimSpace(title) != "" {
			return title
		}
	}
	return fallback
}

func userPrompt(req GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-slide presentation about %q.", req.SlideCount, strings.TrimSpace(req.Topic))
	if audience := strings.TrimSpace(req.Audience); audience != "" {
		fmt.Fprintf(&b, " The audience is %s.", audience)
	}
	b.WriteString(" Keep bullets short and concrete.")
	return b.String()
}
