// Package repository provides the data access layer for users, cards and decks.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store bundles the entity repositories that share one database handle.
type Store struct {
	db    *gorm.DB
	Users UserRepository
	Cards CardRepository
	Decks DeckRepository
}

// NewStore creates repositories bound to db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		Users: NewUserRepository(db),
		Cards: NewCardRepository(db),
		Decks: NewDeckRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise. fn must
// only use the Store it is given.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping checks that the underlying connection pool can reach the database.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get connection pool: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
