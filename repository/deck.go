package repository

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/kioku-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeckRepository defines the interface for deck data operations. Decks
// returned by it carry their member card ids.
type DeckRepository interface {
	List(ctx context.Context) ([]models.Deck, error)
	FindByID(ctx context.Context, id string) (*models.Deck, error)
	Create(ctx context.Context, deck *models.Deck) error
	Update(ctx context.Context, deck *models.Deck) error
	Delete(ctx context.Context, id string) (*models.Deck, error)
}

type deckRepository struct {
	db *gorm.DB
}

// NewDeckRepository creates a new DeckRepository instance.
func NewDeckRepository(db *gorm.DB) DeckRepository {
	return &deckRepository{db: db}
}

// withCardIDs preloads only the columns needed to derive Deck.CardIDs.
func withCardIDs(db *gorm.DB) *gorm.DB {
	return db.Preload("Cards", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "deck_id", "created_at").Order("created_at")
	})
}

func fillCardIDs(deck *models.Deck) {
	ids := make([]string, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		ids = append(ids, card.ID)
	}
	deck.CardIDs = ids
	deck.Cards = nil
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	decks := []models.Deck{}
	if err := withCardIDs(r.db.WithContext(ctx)).Order("created_at").Find(&decks).Error; err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	for i := range decks {
		fillCardIDs(&decks[i])
	}
	return decks, nil
}

func (r *deckRepository) FindByID(ctx context.Context, id string) (*models.Deck, error) {
	var deck models.Deck
	err := withCardIDs(r.db.WithContext(ctx)).Where("id = ?", id).First(&deck).Error
	if err != nil {
		return nil, translate(err, "find deck "+id, notFound(ErrDeckNotFound, "id", id))
	}
	fillCardIDs(&deck)
	return &deck, nil
}

func (r *deckRepository) Create(ctx context.Context, deck *models.Deck) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(deck).Error; err != nil {
		return translate(err, "create deck", nil)
	}
	if deck.CardIDs == nil {
		deck.CardIDs = []string{}
	}
	return nil
}

func (r *deckRepository) Update(ctx context.Context, deck *models.Deck) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(deck).Error; err != nil {
		return translate(err, "update deck "+deck.ID, nil)
	}
	return nil
}

// Delete removes the deck. Member cards are left in place; the deck_id
// foreign key is cleared by the caller or by ON DELETE SET NULL.
func (r *deckRepository) Delete(ctx context.Context, id string) (*models.Deck, error) {
	deck, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(deck)
	if result.Error != nil {
		return nil, translate(result.Error, "delete deck "+id, nil)
	}
	if result.RowsAffected == 0 {
		return nil, notFound(ErrDeckNotFound, "id", id)
	}
	return deck, nil
}
