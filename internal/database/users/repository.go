// Package users provides the credential store: database operations for user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.FindByEmail(ctx, "a@example.com")
package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/hirehub/internal/auth"
	"github.com/mrlokans/hirehub/internal/entities"
)

var _ auth.UserStore = (*Repository)(nil)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail returns auth.ErrUserNotFound when no account uses the email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByID returns auth.ErrUserNotFound when the account does not exist (or no longer exists).
func (r *Repository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create inserts the user. The unique email index makes this an atomic
// "create if absent": a concurrent duplicate fails with auth.ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Delete removes the user permanently.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// Count returns the number of registered users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error
	return count, err
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return auth.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return auth.ErrDuplicateEmail
	default:
		return fmt.Errorf("%w: %v", auth.ErrStorage, err)
	}
}
