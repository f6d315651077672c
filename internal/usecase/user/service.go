package user

import (
	"context"
	"errors"
	"strings"

	"campus-jobs/internal/domain/experience"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
)

// Profile is the public view of an account with its work history.
type Profile struct {
	User        user.User
	Experiences []experience.Experience
}

type Service struct {
	users       user.Repository
	experiences experience.Repository
}

func NewService(users user.Repository, experiences experience.Repository) *Service {
	return &Service{users: users, experiences: experiences}
}

func (s *Service) GetMe(ctx context.Context, userID int64) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, errs.Unauthenticated("account no longer exists", err)
		}
		return user.User{}, errs.Internal("failed to load user", err)
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) Profile(ctx context.Context, username string) (Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Profile{}, errs.Validation("username is required", nil)
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, errs.NotFound("user not found", err)
		}
		return Profile{}, errs.Internal("failed to load user", err)
	}
	u.PasswordHash = ""

	exps, err := s.experiences.ListByUsername(ctx, u.Username)
	if err != nil {
		return Profile{}, errs.Internal("failed to load experiences", err)
	}
	return Profile{User: u, Experiences: exps}, nil
}
