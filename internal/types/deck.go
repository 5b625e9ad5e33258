package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DeckStatusQueued    = "queued"
	DeckStatusAssembled = "assembled"
	DeckStatusDegraded  = "degraded"
	DeckStatusFailed    = "failed"
)

// Deck is the persisted result of running the pipeline for one prompt. The
// assembled slide payload is stored as jsonb so exports can re-render without
// re-calling the model.
type Deck struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PromptID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"prompt_id"`
	Title      string         `gorm:"column:title;not null" json:"title"`
	Status     string         `gorm:"column:status;not null;index" json:"status"`
	SlideCount int            `gorm:"column:slide_count;not null" json:"slide_count"`
	Payload    datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload"`
	RawText    string         `gorm:"column:raw_text" json:"-"`
	Error      string         `gorm:"column:error" json:"error,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Deck) TableName() string { return "deck" }

func (d *Deck) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
