package auth

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

const (
	minPasswordLen   = 8
	maxPasswordBytes = 72 // bcrypt rejects longer inputs
)

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	IsRecruiter bool
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	username := strings.TrimSpace(in.Username)
	if n := utf8.RuneCountInString(username); n < 2 || n > 20 {
		return user.User{}, errs.Validation("username must be 2 to 20 characters", ErrInvalidInput)
	}
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return user.User{}, errs.Validation("email is invalid", ErrInvalidInput)
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLen {
		return user.User{}, errs.Validation("password is too short", ErrInvalidInput)
	}
	if len(in.Password) > maxPasswordBytes {
		return user.User{}, errs.Validation("password is too long", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, errs.Internal("failed to hash password", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsRecruiter:  in.IsRecruiter,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			return user.User{}, errs.Duplicate("email already registered", err)
		case errors.Is(err, user.ErrDuplicateUsername):
			return user.User{}, errs.Duplicate("username already taken", err)
		}
		return user.User{}, errs.Internal("failed to create user", err)
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, errs.Unauthenticated("invalid credentials", ErrInvalidCredentials)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, errs.Unauthenticated("invalid credentials", ErrInvalidCredentials)
		}
		return user.User{}, errs.Internal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, errs.Unauthenticated("invalid credentials", ErrInvalidCredentials)
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
