package ports

import (
	"context"

	"github.com/gms2/gms-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// List returns every user in store-native order.
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByLogin matches the normalized value against username or email.
	FindByLogin(ctx context.Context, normalized string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// Update persists only the profile fields and normalized copies of user.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
