package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/types"
)

type PromptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, prompt *types.Prompt) (*types.Prompt, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Prompt, error)
}

type promptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromptRepo(db *gorm.DB, baseLog *logger.Logger) PromptRepo {
	return &promptRepo{db: db, log: baseLog.With("repo", "PromptRepo")}
}

func (r *promptRepo) Create(ctx context.Context, tx *gorm.DB, prompt *types.Prompt) (*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}

func (r *promptRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Prompt
	if err := transaction.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
