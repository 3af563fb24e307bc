package ports

import (
	"context"

	"github.com/gms2/gms-api/internal/core/domain"
)

// RegisterInput is the payload for self-service registration.
type RegisterInput struct {
	UserName     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	AddressLine1 string
	City         string
	State        string
	PhoneNumber  string
}

// AccountService handles registration, login and the caller's own profile.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login accepts a username or an email and returns a signed bearer token.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	Details(ctx context.Context, userID string) (*domain.User, error)
}
