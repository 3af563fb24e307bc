package handler

import (
	"context"

	"github.com/gms2/gms-api/internal/core/domain"
	"github.com/gms2/gms-api/internal/core/ports"
)

type stubUserService struct {
	listFn      func(ctx context.Context) ([]*domain.User, error)
	createFn    func(ctx context.Context, in ports.CreateUserInput) error
	readFn      func(ctx context.Context, id string) (*domain.User, error)
	updateFn    func(ctx context.Context, in ports.UpdateUserInput) error
	deleteFn    func(ctx context.Context, id string) error
	bootstrapFn func(ctx context.Context) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) error {
	if s.createFn == nil {
		return domain.ErrNotImplemented
	}
	return s.createFn(ctx, in)
}

func (s *stubUserService) Read(ctx context.Context, id string) (*domain.User, error) {
	return s.readFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, in ports.UpdateUserInput) error {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) BootstrapRoles(ctx context.Context) error {
	return s.bootstrapFn(ctx)
}

type stubAccountService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, login, password string) (string, *domain.User, error)
	detailsFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccountService) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, login, password)
}

func (s *stubAccountService) Details(ctx context.Context, userID string) (*domain.User, error) {
	return s.detailsFn(ctx, userID)
}
