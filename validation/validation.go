// Package validation checks cross-entity references before a mutation.
//
// The checks take the Store they should read through; callers pass a
// transaction-bound Store so the check and the following write share one
// transaction. Foreign keys in the schema catch anything that slips past.
package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrewpaige1/kioku-api/repository"
)

// CardReferences checks that the creator exists and, when deckID is set, that
// the deck exists.
func CardReferences(ctx context.Context, store *repository.Store, creatorID string, deckID *string) error {
	if _, err := store.Users.FindByID(ctx, creatorID); err != nil {
		return err
	}
	return DeckExists(ctx, store, deckID)
}

// DeckExists checks deckID when it is set. A nil deckID always passes.
func DeckExists(ctx context.Context, store *repository.Store, deckID *string) error {
	if deckID == nil {
		return nil
	}
	_, err := store.Decks.FindByID(ctx, *deckID)
	return err
}

// DeckReferences checks that the creator exists and then every card in
// cardIDs, stopping at the first missing card.
func DeckReferences(ctx context.Context, store *repository.Store, creatorID string, cardIDs []string) error {
	if _, err := store.Users.FindByID(ctx, creatorID); err != nil {
		return err
	}
	return CardsExist(ctx, store, cardIDs)
}

// CardsExist checks each id in order and returns the first lookup failure.
func CardsExist(ctx context.Context, store *repository.Store, cardIDs []string) error {
	for _, id := range cardIDs {
		if _, err := store.Cards.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// UniqueUsername fails with ErrUsernameTaken when a user other than exceptID
// already holds username. Pass an empty exceptID on create.
func UniqueUsername(ctx context.Context, store *repository.Store, username, exceptID string) error {
	existing, err := store.Users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != exceptID:
		return fmt.Errorf("%w: %s", repository.ErrUsernameTaken, username)
	}
	return nil
}

// UserDeletable fails with ErrUserHasDependents while the user still owns
// cards or decks.
func UserDeletable(ctx context.Context, store *repository.Store, userID string) error {
	if _, err := store.Users.FindByID(ctx, userID); err != nil {
		return err
	}
	count, err := store.Users.CountDependents(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: user %s owns %d cards or decks", repository.ErrUserHasDependents, userID, count)
	}
	return nil
}
