package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/types"
)

type DeckRepo interface {
	Create(ctx context.Context, tx *gorm.DB, deck *types.Deck) (*types.Deck, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Deck, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Deck, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, errMsg string) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type deckRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeckRepo(db *gorm.DB, baseLog *logger.Logger) DeckRepo {
	return &deckRepo{db: db, log: baseLog.With("repo", "DeckRepo")}
}

func (r *deckRepo) Create(ctx context.Context, tx *gorm.DB, deck *types.Deck) (*types.Deck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(deck).Error; err != nil {
		return nil, err
	}
	return deck, nil
}

func (r *deckRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Deck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Deck
	if err := transaction.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *deckRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Deck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	var results []*types.Deck
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *deckRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, errMsg string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Deck{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "error": errMsg}).Error
}

func (r *deckRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Deck{}).Error
}
