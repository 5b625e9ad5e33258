package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prompt is one deck-generation request as submitted by a client.
type Prompt struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Topic       string    `gorm:"column:topic;not null" json:"topic"`
	SlideCount  int       `gorm:"column:slide_count;not null" json:"slide_count"`
	Audience    string    `gorm:"column:audience" json:"audience"`
	RequestedBy string    `gorm:"column:requested_by;index" json:"requested_by"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Prompt) TableName() string { return "prompt" }

// IDs are assigned app-side so every supported driver behaves the same.
func (p *Prompt) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
