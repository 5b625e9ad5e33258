package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventStageGenerate = "generate"
	EventStageRecover  = "recover"
	EventStageSanitize = "sanitize"
	EventStageAssemble = "assemble"
	EventStageRender   = "render"
)

// GenerationEvent is one pipeline stage outcome for a deck. Failed stages
// keep the deck alive; the event trail is how operators see what degraded.
type GenerationEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DeckID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"deck_id"`
	Stage     string         `gorm:"column:stage;not null;index" json:"stage"`
	Success   bool           `gorm:"column:success;not null" json:"success"`
	Error     string         `gorm:"column:error" json:"error"`
	Detail    datatypes.JSON `gorm:"type:jsonb;column:detail" json:"detail"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (GenerationEvent) TableName() string { return "generation_event" }

func (e *GenerationEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
