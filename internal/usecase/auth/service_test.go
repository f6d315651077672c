package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/repository/memory"
)

func newTestService() *Service {
	s := NewService(memory.New().Users())
	s.cost = bcrypt.MinCost
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "  Alice@Example.com ", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "alice@example.com" || u.PasswordHash != "" || u.ImageFile != user.DefaultImageFile {
		t.Fatalf("unexpected user: %+v", u)
	}

	got, err := s.Login(ctx, LoginInput{Email: "ALICE@example.com", Password: "password123"})
	if err != nil || got.ID != u.ID {
		t.Fatalf("login: %+v err=%v", got, err)
	}

	_, err = s.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	if !errs.Is(err, errs.KindUnauthenticated) || !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	_, err = s.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := s.Register(ctx, RegisterInput{Username: "alice2", Email: "ALICE@example.com", Password: "password123"})
	if !errs.Is(err, errs.KindDuplicateKey) || !errors.Is(err, user.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	_, err = s.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "password123"})
	if !errs.Is(err, errs.KindDuplicateKey) || !errors.Is(err, user.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	cases := []RegisterInput{
		{Username: "a", Email: "a@example.com", Password: "password123"},
		{Username: "alice", Email: "not-an-email", Password: "password123"},
		{Username: "alice", Email: "alice@example.com", Password: "short"},
		{Username: "alice", Email: "alice@example.com", Password: strings.Repeat("x", 73)},
	}
	for _, in := range cases {
		if _, err := s.Register(ctx, in); !errs.Is(err, errs.KindValidation) {
			t.Fatalf("%+v: expected validation, got %v", in, err)
		}
	}
}
