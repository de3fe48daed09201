package handlers

import (
	"net/http"

	"github.com/andrewpaige1/kioku-api/models"
	"github.com/andrewpaige1/kioku-api/repository"
	"github.com/andrewpaige1/kioku-api/validation"
	"go.uber.org/zap"
)

type createCardRequest struct {
	Name      *string `json:"name"`
	FrontDesc *string `json:"front_desc"`
	BackDesc  *string `json:"back_desc"`
	CreatorID *string `json:"creator_id"`
	DeckID    *string `json:"deck_id"`
}

func (req *createCardRequest) validate() error {
	switch {
	case req.Name == nil:
		return missingField("name")
	case req.FrontDesc == nil:
		return missingField("front_desc")
	case req.BackDesc == nil:
		return missingField("back_desc")
	case req.CreatorID == nil:
		return missingField("creator_id")
	}
	return nil
}

// Omitted fields keep their stored value. deck_id: null detaches the card.
type updateCardRequest struct {
	Name      *string        `json:"name"`
	FrontDesc *string        `json:"front_desc"`
	BackDesc  *string        `json:"back_desc"`
	DeckID    optionalString `json:"deck_id"`
}

func (req *updateCardRequest) validate() error { return nil }

// GET /cards
func (h *DBHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.store.Cards.List(r.Context())
	if err != nil {
		h.writeListError(w, "GetCards", "cards", err)
		return
	}
	h.writeJSON(w, "GetCards", http.StatusOK, cards)
}

// GET /cards/{id}
func (h *DBHandler) GetCardByID(w http.ResponseWriter, r *http.Request) {
	card, err := h.store.Cards.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "GetCardByID", "Could not find card", err)
		return
	}
	h.writeJSON(w, "GetCardByID", http.StatusOK, card)
}

// POST /cards
func (h *DBHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if !h.decode(w, r, "CreateCard", &req) {
		return
	}

	ctx := r.Context()
	card := models.Card{
		Name:      *req.Name,
		FrontDesc: *req.FrontDesc,
		BackDesc:  *req.BackDesc,
		CreatorID: *req.CreatorID,
		DeckID:    req.DeckID,
	}
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := validation.CardReferences(ctx, tx, card.CreatorID, card.DeckID); err != nil {
			return err
		}
		return tx.Cards.Create(ctx, &card)
	})
	if err != nil {
		h.writeStoreError(w, "CreateCard", "Could not create card", err)
		return
	}

	h.log.Info("CreateCard: created card", zap.String("id", card.ID), zap.String("creator_id", card.CreatorID))
	h.writeJSON(w, "CreateCard", http.StatusOK, card)
}

// PUT /cards/{id}
func (h *DBHandler) UpdateCardByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req updateCardRequest
	if !h.decode(w, r, "UpdateCardByID", &req) {
		return
	}

	ctx := r.Context()
	var card *models.Card
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if card, err = tx.Cards.FindByID(ctx, id); err != nil {
			return err
		}

		if req.Name != nil {
			card.Name = *req.Name
		}
		if req.FrontDesc != nil {
			card.FrontDesc = *req.FrontDesc
		}
		if req.BackDesc != nil {
			card.BackDesc = *req.BackDesc
		}
		if req.DeckID.Set {
			if err := validation.DeckExists(ctx, tx, req.DeckID.Value); err != nil {
				return err
			}
			card.DeckID = req.DeckID.Value
		}

		return tx.Cards.Update(ctx, card)
	})
	if err != nil {
		h.writeStoreError(w, "UpdateCardByID", "Could not update card", err)
		return
	}
	h.writeJSON(w, "UpdateCardByID", http.StatusOK, card)
}

// DELETE /cards/{id}
func (h *DBHandler) DeleteCardByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	card, err := h.store.Cards.Delete(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, "DeleteCardByID", "Could not delete card", err)
		return
	}

	h.log.Info("DeleteCardByID: deleted card", zap.String("id", id))
	h.writeJSON(w, "DeleteCardByID", http.StatusOK, card)
}
