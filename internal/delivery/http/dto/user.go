package dto

import (
	"time"

	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/usecase"
	ucuser "campus-jobs/internal/usecase/user"
)

type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	ImageFile   string    `json:"image_file"`
	IsRecruiter bool      `json:"is_recruiter"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		ImageFile:   u.ImageFile,
		IsRecruiter: u.IsRecruiter,
		CreatedAt:   u.CreatedAt,
	}
}

type SessionResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func NewSessionResponse(s usecase.Session) SessionResponse {
	return SessionResponse{
		User:         NewUserResponse(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}

type ProfileResponse struct {
	User        UserResponse         `json:"user"`
	Experiences []ExperienceResponse `json:"experiences"`
}

func NewProfileResponse(p ucuser.Profile) ProfileResponse {
	return ProfileResponse{
		User:        NewUserResponse(p.User),
		Experiences: NewExperienceList(p.Experiences),
	}
}
