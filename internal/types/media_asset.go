package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaAsset records one generated slide picture and where it was placed.
type MediaAsset struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeckID     uuid.UUID `gorm:"type:uuid;not null;index" json:"deck_id"`
	SlideIndex int       `gorm:"column:slide_index;not null" json:"slide_index"`
	Prompt     string    `gorm:"column:prompt" json:"prompt"`
	Mode       string    `gorm:"column:mode;not null" json:"mode"`
	WidthPx    int       `gorm:"column:width_px;not null" json:"width_px"`
	HeightPx   int       `gorm:"column:height_px;not null" json:"height_px"`
	Source     string    `gorm:"column:source;not null" json:"source"` // provider|placeholder
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (MediaAsset) TableName() string { return "media_asset" }

func (a *MediaAsset) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
