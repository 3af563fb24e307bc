package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gms2/gms-api/internal/core/domain"
	"github.com/gms2/gms-api/internal/core/ports"
)

// AccountService implements registration, login and profile lookup.
type AccountService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	metrics   ports.Metrics
}

// NewAccountService returns the account service. m may be nil to skip
// metrics.
func NewAccountService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, m ports.Metrics) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if m == nil {
		m = noMetrics{}
	}
	return &AccountService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, metrics: m}
}

// Register creates a new account with the Student role.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.UserName) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: userName and password are required", domain.ErrInvalidInput)
	}
	if err := validate.Var(in.Email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid email", domain.ErrInvalidInput)
	}

	for _, login := range []string{in.UserName, in.Email} {
		_, err := s.repo.FindByLogin(ctx, domain.Normalize(login))
		if err == nil {
			return nil, domain.ErrUserExists
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("register: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleStudent},
		CreatedAt:    now,
		UpdatedAt:    now,
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

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.metrics.Registration()
	return user, nil
}

// Login checks the password of the user matching login (username or email)
// and returns a signed token.
func (s *AccountService) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	if login == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByLogin(ctx, domain.Normalize(login))
	if err != nil {
		s.metrics.Login("failed")
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.metrics.Login("failed")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.metrics.Login("ok")
	return token, user, nil
}

// Details returns the account of the authenticated caller.
func (s *AccountService) Details(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account details: %w", err)
	}
	return user, nil
}

func (s *AccountService) generateToken(user *domain.User) (string, error) {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.UserName,
		"roles":    roles,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
