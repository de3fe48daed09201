package models

import (
	"time"

	"gorm.io/gorm"
)

// Deck represents a named collection of cards. Membership lives on the card
// side (Card.DeckID); CardIDs is filled in when a deck is read.
type Deck struct {
	ID        string   `gorm:"primaryKey;size:21" json:"id"`
	Name      string   `gorm:"not null;size:100" json:"name"`
	CreatorID string   `gorm:"not null;size:21;index" json:"creator_id"`
	CardIDs   []string `gorm:"-" json:"card_ids"`

	Cards []Card `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	return assignID(&d.ID)
}
