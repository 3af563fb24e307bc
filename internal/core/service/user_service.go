package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gms2/gms-api/internal/core/domain"
	"github.com/gms2/gms-api/internal/core/ports"
)

// UserCache abstracts the read-through user cache (Redis).
//
// Fill must not overwrite an existing entry, and after Invalidate a Fill
// for the same id must be refused until the invalidation has outlived any
// read that was in flight when it happened.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool, error)
	Fill(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}

type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	cache   UserCache
	metrics ports.Metrics
	logger  zerolog.Logger
}

// NewUserService returns the user directory service. cache may be nil, in
// which case every Read goes to the store; m may be nil to skip metrics.
func NewUserService(users ports.UserRepository, roles ports.RoleRepository, cache UserCache, m ports.Metrics, logger zerolog.Logger) *UserService {
	if cache == nil {
		cache = noCache{}
	}
	if m == nil {
		m = noMetrics{}
	}
	return &UserService{users: users, roles: roles, cache: cache, metrics: m, logger: logger}
}

// List returns every stored user.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.observe("list", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.observe("list", nil)
	return users, nil
}

// Create is not supported; users are created through account registration.
func (s *UserService) Create(_ context.Context, _ ports.CreateUserInput) error {
	s.observe("create", domain.ErrNotImplemented)
	return domain.ErrNotImplemented
}

// Read returns the stored user with the given id. Ids that are not UUIDs
// cannot match any user and yield domain.ErrUserNotFound.
func (s *UserService) Read(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		s.observe("read", domain.ErrUserNotFound)
		return nil, domain.ErrUserNotFound
	}

	cached, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		s.metrics.UserCacheLookup("error")
		s.logger.Warn().Err(err).Str("user_id", id).Msg("user cache lookup failed, reading store")
	} else if ok {
		s.metrics.UserCacheLookup("hit")
		s.observe("read", nil)
		return cached, nil
	} else {
		s.metrics.UserCacheLookup("miss")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.observe("read", err)
		return nil, fmt.Errorf("read user: %w", err)
	}

	if err := s.cache.Fill(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to cache user")
	}

	s.observe("read", nil)
	return user, nil
}

// Update overwrites the profile fields of an existing user.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) error {
	if err := validateUpdate(in); err != nil {
		s.observe("update", err)
		return err
	}

	user, err := s.users.FindByID(ctx, in.ID)
	if err != nil {
		s.observe("update", err)
		return fmt.Errorf("update user: %w", err)
	}

	user.ApplyProfile(domain.Profile{
		UserName:     in.UserName,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		AddressLine1: in.AddressLine1,
		City:         in.City,
		State:        in.State,
		PhoneNumber:  in.PhoneNumber,
	})

	if err := s.users.Update(ctx, user); err != nil {
		s.observe("update", err)
		return fmt.Errorf("update user: %w", err)
	}

	s.invalidate(ctx, user.ID)
	s.logger.Info().Str("user_id", user.ID).Str("username", user.UserName).Msg("user updated")
	s.observe("update", nil)
	return nil
}

// Delete removes the user with the given id. Authorization is enforced by
// the caller before this is reached.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		s.observe("delete", domain.ErrUserNotFound)
		return domain.ErrUserNotFound
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		s.observe("delete", err)
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		s.observe("delete", err)
		return fmt.Errorf("delete user: %w", err)
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	s.observe("delete", nil)
	return nil
}

// BootstrapRoles makes sure every fixed role exists. It stops at the first
// store error; roles created before the failure are kept.
func (s *UserService) BootstrapRoles(ctx context.Context) error {
	for _, name := range domain.FixedRoles {
		exists, err := s.roles.Exists(ctx, name)
		if err != nil {
			return fmt.Errorf("bootstrap roles: check %q: %w", name, err)
		}
		if exists {
			continue
		}

		err = s.roles.Create(ctx, domain.NewRole(uuid.NewString(), name))
		if errors.Is(err, domain.ErrRoleExists) {
			// created concurrently by another instance
			continue
		}
		if err != nil {
			return fmt.Errorf("bootstrap roles: create %q: %w", name, err)
		}

		s.metrics.RoleCreated(name)
		s.logger.Info().Str("role", name).Msg("role created")
	}
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to invalidate cached user")
	}
}

var validate = validator.New()

func validateUpdate(in ports.UpdateUserInput) error {
	if _, err := uuid.Parse(in.ID); err != nil {
		return fmt.Errorf("%w: id must be a uuid", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.UserName) == "" {
		return fmt.Errorf("%w: userName is required", domain.ErrInvalidInput)
	}
	if err := validate.Var(in.Email, "required,email"); err != nil {
		return fmt.Errorf("%w: email must be a valid email", domain.ErrInvalidInput)
	}
	return nil
}

// observe records the outcome of a directory operation.
func (s *UserService) observe(op string, err error) {
	s.metrics.UserOperation(op, resultLabel(err))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrNotImplemented):
		return "not_implemented"
	default:
		return "error"
	}
}

type noCache struct{}

func (noCache) Get(context.Context, string) (*domain.User, bool, error) { return nil, false, nil }
func (noCache) Fill(context.Context, *domain.User) error                { return nil }
func (noCache) Invalidate(context.Context, string) error                { return nil }

type noMetrics struct{}

func (noMetrics) UserOperation(string, string) {}
func (noMetrics) UserCacheLookup(string)       {}
func (noMetrics) RoleCreated(string)           {}
func (noMetrics) Login(string)                 {}
func (noMetrics) Registration()                {}
