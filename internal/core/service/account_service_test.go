package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gms2/gms-api/internal/core/domain"
	"github.com/gms2/gms-api/internal/core/ports"
)

func registerInput(username, email, password string) ports.RegisterInput {
	return ports.RegisterInput{
		UserName:  username,
		Email:     email,
		Password:  password,
		FirstName: "First",
		LastName:  "Last",
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, nil)

	user, err := svc.Register(context.Background(), registerInput("alice", "Alice@Example.com", "pass123"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.NormalizedUserName != "ALICE" || user.NormalizedEmail != "ALICE@EXAMPLE.COM" {
		t.Fatalf("normalized fields not set: %+v", user)
	}
	if !user.HasRole(domain.RoleStudent) {
		t.Fatalf("expected Student role, got %v", user.Roles)
	}
	if _, ok := repo.byID[user.ID]; !ok {
		t.Fatalf("user not persisted")
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	svc := NewAccountService(newStubUserRepo(), "secret", time.Hour, nil)

	bad := []ports.RegisterInput{
		registerInput("", "a@example.com", "pass"),
		registerInput("bob", "a@example.com", ""),
		registerInput("bob", "not-an-email", "pass"),
	}
	for _, in := range bad {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	svc := NewAccountService(newStubUserRepo(), "secret", time.Hour, nil)

	if _, err := svc.Register(context.Background(), registerInput("bob", "bob@example.com", "pass")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("BOB", "other@example.com", "pass2")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for same username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("robert", "BOB@example.com", "pass2")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for same email, got %v", err)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, nil)

	registered, err := svc.Register(context.Background(), registerInput("carol", "carol@example.com", "s3cret"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, login := range []string{"carol", "CAROL@example.com"} {
		token, user, err := svc.Login(context.Background(), login, "s3cret")
		if err != nil {
			t.Fatalf("login %q failed: %v", login, err)
		}
		if token == "" || user == nil || user.ID != registered.ID {
			t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		if err != nil || !parsed.Valid {
			t.Fatalf("token invalid: %v", err)
		}
		if claims["sub"] != registered.ID || claims["username"] != "carol" {
			t.Fatalf("unexpected claims: %v", claims)
		}
		roles, ok := claims["roles"].([]interface{})
		if !ok || len(roles) != 1 || roles[0] != domain.RoleStudent {
			t.Fatalf("unexpected roles claim: %v", claims["roles"])
		}
	}
}

func TestAccountService_Login_InvalidPassword(t *testing.T) {
	svc := NewAccountService(newStubUserRepo(), "secret", time.Hour, nil)

	_, _ = svc.Register(context.Background(), registerInput("dave", "dave@example.com", "goodpass"))
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAccountService_Login_UserNotFound(t *testing.T) {
	svc := NewAccountService(newStubUserRepo(), "secret", time.Hour, nil)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_Details(t *testing.T) {
	repo := newStubUserRepo(seedAlice())
	svc := NewAccountService(repo, "secret", time.Hour, nil)

	user, err := svc.Details(context.Background(), aliceID)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if user.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Details(context.Background(), ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Details(context.Background(), missingID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_RecordsMetrics(t *testing.T) {
	m := newStubMetrics()
	svc := NewAccountService(newStubUserRepo(), "secret", time.Hour, m)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("alice", "alice@example.com", "pass123")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice", "pass123"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	_, _, _ = svc.Login(ctx, "alice", "wrong")

	if m.registered != 1 || m.logins["ok"] != 1 || m.logins["failed"] != 1 {
		t.Fatalf("unexpected account metrics: registered=%d logins=%v", m.registered, m.logins)
	}
}
