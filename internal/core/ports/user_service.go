package ports

import (
	"context"

	"github.com/gms2/gms-api/internal/core/domain"
)

// UpdateUserInput carries the editable fields of a directory update.
type UpdateUserInput struct {
	ID           string
	UserName     string
	Email        string
	FirstName    string
	LastName     string
	AddressLine1 string
	City         string
	State        string
	PhoneNumber  string
}

// CreateUserInput mirrors UpdateUserInput for the unsupported create path.
type CreateUserInput = UpdateUserInput

// UserService defines the user directory use cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	// Create always fails with domain.ErrNotImplemented.
	Create(ctx context.Context, input CreateUserInput) error
	Read(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) error
	Delete(ctx context.Context, id string) error
	// BootstrapRoles creates any of domain.FixedRoles that do not exist yet.
	BootstrapRoles(ctx context.Context) error
}
