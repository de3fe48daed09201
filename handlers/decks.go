package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/andrewpaige1/kioku-api/models"
	"github.com/andrewpaige1/kioku-api/repository"
	"github.com/andrewpaige1/kioku-api/validation"
	"go.uber.org/zap"
)

// cardRef accepts either a card id or a card object carrying "id".
type cardRef string

func (c *cardRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*c = cardRef(id)
		return nil
	}

	var card struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &card); err != nil {
		return fmt.Errorf("card must be an id or an object with an id: %w", err)
	}
	*c = cardRef(card.ID)
	return nil
}

func cardIDs(refs []cardRef) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for i, ref := range refs {
		if ref == "" {
			return nil, fmt.Errorf("cards[%d] has no id", i)
		}
		ids = append(ids, string(ref))
	}
	return ids, nil
}

type createDeckRequest struct {
	Name      *string    `json:"name"`
	CreatorID *string    `json:"creator_id"`
	Cards     *[]cardRef `json:"cards"`

	cardIDs []string
}

func (req *createDeckRequest) validate() error {
	switch {
	case req.Name == nil:
		return missingField("name")
	case req.CreatorID == nil:
		return missingField("creator_id")
	case req.Cards == nil:
		return missingField("cards")
	}
	var err error
	req.cardIDs, err = cardIDs(*req.Cards)
	return err
}

// Cards, when present, replaces the deck's membership.
type updateDeckRequest struct {
	Name  *string    `json:"name"`
	Cards *[]cardRef `json:"cards"`

	// nil when cards was omitted
	cardIDs []string
}

func (req *updateDeckRequest) validate() error {
	if req.Cards == nil {
		return nil
	}
	var err error
	req.cardIDs, err = cardIDs(*req.Cards)
	return err
}

// GET /decks
func (h *DBHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.store.Decks.List(r.Context())
	if err != nil {
		h.writeListError(w, "GetDecks", "decks", err)
		return
	}
	h.writeJSON(w, "GetDecks", http.StatusOK, decks)
}

// GET /decks/{id}
func (h *DBHandler) GetDeckByID(w http.ResponseWriter, r *http.Request) {
	deck, err := h.store.Decks.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "GetDeckByID", "Could not find deck", err)
		return
	}
	h.writeJSON(w, "GetDeckByID", http.StatusOK, deck)
}

// POST /decks
//
// Validates the creator and every listed card, then creates the deck and
// moves the listed cards into it, all in one transaction.
func (h *DBHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if !h.decode(w, r, "CreateDeck", &req) {
		return
	}
	ids := req.cardIDs

	ctx := r.Context()
	var deck *models.Deck
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := validation.DeckReferences(ctx, tx, *req.CreatorID, ids); err != nil {
			return err
		}
		created := models.Deck{Name: *req.Name, CreatorID: *req.CreatorID}
		if err := tx.Decks.Create(ctx, &created); err != nil {
			return err
		}
		if err := tx.Cards.AttachToDeck(ctx, created.ID, ids); err != nil {
			return err
		}
		var err error
		deck, err = tx.Decks.FindByID(ctx, created.ID)
		return err
	})
	if err != nil {
		h.writeStoreError(w, "CreateDeck", "Could not create deck", err)
		return
	}

	h.log.Info("CreateDeck: created deck", zap.String("id", deck.ID), zap.Int("cards", len(deck.CardIDs)))
	h.writeJSON(w, "CreateDeck", http.StatusOK, deck)
}

// PUT /decks/{id}
func (h *DBHandler) UpdateDeckByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req updateDeckRequest
	if !h.decode(w, r, "UpdateDeckByID", &req) {
		return
	}

	ctx := r.Context()
	var deck *models.Deck
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Decks.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil && *req.Name != current.Name {
			current.Name = *req.Name
			if err := tx.Decks.Update(ctx, current); err != nil {
				return err
			}
		}

		if req.Cards != nil {
			ids := req.cardIDs
			if err := validation.CardsExist(ctx, tx, ids); err != nil {
				return err
			}
			if err := tx.Cards.DetachFromDeck(ctx, id, ids); err != nil {
				return err
			}
			if err := tx.Cards.AttachToDeck(ctx, id, ids); err != nil {
				return err
			}
		}

		deck, err = tx.Decks.FindByID(ctx, id)
		return err
	})
	if err != nil {
		h.writeStoreError(w, "UpdateDeckByID", "Could not update deck", err)
		return
	}
	h.writeJSON(w, "UpdateDeckByID", http.StatusOK, deck)
}

// DELETE /decks/{id}
//
// Member cards are detached and kept. The response lists the cards the deck
// held before deletion.
func (h *DBHandler) DeleteDeckByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := r.Context()

	var deleted *models.Deck
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if deleted, err = tx.Decks.FindByID(ctx, id); err != nil {
			return err
		}
		if err := tx.Cards.DetachFromDeck(ctx, id, nil); err != nil {
			return err
		}
		_, err = tx.Decks.Delete(ctx, id)
		return err
	})
	if err != nil {
		h.writeStoreError(w, "DeleteDeckByID", "Could not delete deck", err)
		return
	}

	h.log.Info("DeleteDeckByID: deleted deck", zap.String("id", id))
	h.writeJSON(w, "DeleteDeckByID", http.StatusOK, deleted)
}
