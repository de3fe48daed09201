package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrewpaige1/kioku-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) (*models.User, error)
	CountDependents(ctx context.Context, id string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err, "find user "+id, notFound(ErrUserNotFound, "id", id))
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err, "find user by username "+username, notFound(ErrUserNotFound, "username", username))
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return translate(err, "create user", nil)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return translate(err, "update user "+user.ID, nil)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(user)
	if result.Error != nil {
		if r.ownsRecords(ctx, id, result.Error) {
			return nil, fmt.Errorf("%w: id %s", ErrUserHasDependents, id)
		}
		return nil, translate(result.Error, "delete user "+id, nil)
	}
	if result.RowsAffected == 0 {
		return nil, notFound(ErrUserNotFound, "id", id)
	}
	return user, nil
}

// ownsRecords reports whether a failed delete was refused by the creator
// foreign keys. sqlite does not tag RESTRICT failures with an error code gorm
// can translate, so the dependents are counted instead.
func (r *userRepository) ownsRecords(ctx context.Context, id string, deleteErr error) bool {
	if errors.Is(deleteErr, gorm.ErrForeignKeyViolated) {
		return true
	}
	count, err := r.CountDependents(ctx, id)
	return err == nil && count > 0
}

func (r *userRepository) CountDependents(ctx context.Context, id string) (int64, error) {
	var cards, decks int64
	if err := r.db.WithContext(ctx).Model(&models.Card{}).Where("creator_id = ?", id).Count(&cards).Error; err != nil {
		return 0, fmt.Errorf("failed to count cards for user %s: %w", id, err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Deck{}).Where("creator_id = ?", id).Count(&decks).Error; err != nil {
		return 0, fmt.Errorf("failed to count decks for user %s: %w", id, err)
	}
	return cards + decks, nil
}
