package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/types"
)

type GenerationEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.GenerationEvent) (*types.GenerationEvent, error)
	GetByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) ([]*types.GenerationEvent, error)
}

type generationEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenerationEventRepo(db *gorm.DB, baseLog *logger.Logger) GenerationEventRepo {
	return &generationEventRepo{db: db, log: baseLog.With("repo", "GenerationEventRepo")}
}

func (r *generationEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.GenerationEvent) (*types.GenerationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *generationEventRepo) GetByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) ([]*types.GenerationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.GenerationEvent
	if err := transaction.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
