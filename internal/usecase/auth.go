package usecase

import (
	"context"
	"errors"

	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/jwt"
	ucauth "campus-jobs/internal/usecase/auth"
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// Session is what a successful login or register hands back to the client.
type Session struct {
	User         user.User
	AccessToken  string
	RefreshToken string
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (Session, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.issue(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.issue(usr)
}

// Refresh rotates both tokens. The access token is rebuilt from the stored
// user so role changes are picked up.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, errs.Unauthenticated("missing refresh token", ErrInvalidRefreshToken)
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, errs.Unauthenticated("refresh token expired", err)
		}
		return Session{}, errs.Unauthenticated("invalid refresh token", ErrInvalidRefreshToken)
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, errs.Unauthenticated("invalid refresh token", ErrInvalidRefreshToken)
		}
		return Session{}, errs.Internal("failed to load user", err)
	}
	usr.PasswordHash = ""
	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (Session, error) {
	access, err := u.jwt.GenerateAccessToken(jwt.Identity{
		UserID:      usr.ID,
		Username:    usr.Username,
		Email:       usr.Email,
		IsRecruiter: usr.IsRecruiter,
	})
	if err != nil {
		return Session{}, errs.Internal("failed to issue access token", err)
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return Session{}, errs.Internal("failed to issue refresh token", err)
	}
	return Session{User: usr, AccessToken: access, RefreshToken: refresh}, nil
}
