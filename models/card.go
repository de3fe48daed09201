package models

import (
	"time"

	"gorm.io/gorm"
)

// Card represents an individual flashcard
type Card struct {
	ID        string  `gorm:"primaryKey;size:21" json:"id"`
	Name      string  `gorm:"not null;size:200" json:"name"`
	FrontDesc string  `gorm:"not null;size:1000" json:"front_desc"`
	BackDesc  string  `gorm:"not null;size:1000" json:"back_desc"`
	CreatorID string  `gorm:"not null;size:21;index" json:"creator_id"`
	DeckID    *string `gorm:"size:21;index" json:"deck_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	return assignID(&c.ID)
}
