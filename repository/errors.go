package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCardNotFound      = errors.New("card not found")
	ErrDeckNotFound      = errors.New("deck not found")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrUserHasDependents = errors.New("user still owns cards or decks")
	ErrReferenceMissing  = errors.New("referenced record does not exist")
)

func notFound(sentinel error, field, value string) error {
	return fmt.Errorf("%w: %s %s", sentinel, field, value)
}

// translate maps gorm errors (with TranslateError enabled) onto this package's
// sentinels. Anything else is wrapped with the failed action.
func translate(err error, action string, missing error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) && missing != nil:
		return missing
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("failed to %s: %w", action, ErrReferenceMissing)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// username is the only unique column besides primary keys
		return fmt.Errorf("failed to %s: %w", action, ErrUsernameTaken)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
