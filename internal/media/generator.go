package media

import (
	"context"

	"github.com/slideforge/slideforge-backend/internal/platform/logger"
)

// Generator produces raw image bytes for a prompt at the requested pixel
// size. Implementations are injected into the renderer; nothing in this
// package holds a shared client handle.
type Generator interface {
	Generate(ctx context.Context, prompt string, width, height int) ([]byte, error)
}

// FallbackGenerator tries primary and falls back to secondary when the
// primary call fails. The renderer uses it to degrade from the remote image
// service to locally drawn placeholder cards.
type FallbackGenerator struct {
	log       *logger.Logger
	primary   Generator
	secondary Generator
}

func NewFallbackGenerator(baseLog *logger.Logger, primary, secondary Generator) *FallbackGenerator {
	return &FallbackGenerator{
		log:       baseLog.With("component", "FallbackGenerator"),
		primary:   primary,
		secondary: secondary,
	}
}

func (g *FallbackGenerator) Generate(ctx context.Context, prompt string, width, height int) ([]byte, error) {
	if g.primary != nil {
		data, err := g.primary.Generate(ctx, prompt, width, height)
		if err == nil {
			return data, nil
		}
		g.log.Warn("primary image generation failed, using fallback", "error", err)
	}
	return g.secondary.Generate(ctx, prompt, width, height)
}
