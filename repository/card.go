package repository

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/kioku-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardRepository defines the interface for card data operations.
type CardRepository interface {
	List(ctx context.Context) ([]models.Card, error)
	FindByID(ctx context.Context, id string) (*models.Card, error)
	Create(ctx context.Context, card *models.Card) error
	Update(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id string) (*models.Card, error)
	AttachToDeck(ctx context.Context, deckID string, cardIDs []string) error
	DetachFromDeck(ctx context.Context, deckID string, keep []string) error
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository instance.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) List(ctx context.Context) ([]models.Card, error) {
	cards := []models.Card{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) FindByID(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		return nil, translate(err, "find card "+id, notFound(ErrCardNotFound, "id", id))
	}
	return &card, nil
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(card).Error; err != nil {
		return translate(err, "create card", nil)
	}
	return nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(card).Error; err != nil {
		return translate(err, "update card "+card.ID, nil)
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id string) (*models.Card, error) {
	card, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(card)
	if result.Error != nil {
		return nil, translate(result.Error, "delete card "+id, nil)
	}
	if result.RowsAffected == 0 {
		return nil, notFound(ErrCardNotFound, "id", id)
	}
	return card, nil
}

// AttachToDeck moves the given cards into deckID.
func (r *cardRepository) AttachToDeck(ctx context.Context, deckID string, cardIDs []string) error {
	if len(cardIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id IN ?", cardIDs).
		Update("deck_id", deckID).Error
	if err != nil {
		return translate(err, "attach cards to deck "+deckID, nil)
	}
	return nil
}

// DetachFromDeck clears deck_id on every card of deckID that is not in keep.
func (r *cardRepository) DetachFromDeck(ctx context.Context, deckID string, keep []string) error {
	query := r.db.WithContext(ctx).Model(&models.Card{}).Where("deck_id = ?", deckID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Update("deck_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach cards from deck %s: %w", deckID, err)
	}
	return nil
}
