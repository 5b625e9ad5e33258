package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/types"
)

type MediaAssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assets []*types.MediaAsset) ([]*types.MediaAsset, error)
	GetByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) ([]*types.MediaAsset, error)
	DeleteByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) error
}

type mediaAssetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaAssetRepo(db *gorm.DB, baseLog *logger.Logger) MediaAssetRepo {
	return &mediaAssetRepo{db: db, log: baseLog.With("repo", "MediaAssetRepo")}
}

func (r *mediaAssetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.MediaAsset) ([]*types.MediaAsset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assets) == 0 {
		return []*types.MediaAsset{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *mediaAssetRepo) GetByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) ([]*types.MediaAsset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.MediaAsset
	if err := transaction.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("slide_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mediaAssetRepo) DeleteByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Delete(&types.MediaAsset{}).Error
}
