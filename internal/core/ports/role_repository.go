package ports

import (
	"context"

	"github.com/gms2/gms-api/internal/core/domain"
)

// RoleRepository defines persistence operations for the role registry.
type RoleRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
	// Create returns domain.ErrRoleExists when a role with the same
	// normalized name is already stored.
	Create(ctx context.Context, role *domain.Role) error
}
