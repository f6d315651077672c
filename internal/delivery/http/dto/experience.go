package dto

import (
	"time"

	"campus-jobs/internal/domain/experience"
)

type ExperienceResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	Duration    string    `json:"duration"`
	Description string    `json:"description"`
	Skills      *string   `json:"skills"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewExperienceResponse(e experience.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:          e.ID,
		Username:    e.Username,
		JobTitle:    e.JobTitle,
		CompanyName: e.CompanyName,
		Location:    e.Location,
		Duration:    e.Duration,
		Description: e.Description,
		Skills:      e.Skills,
		CreatedAt:   e.CreatedAt,
	}
}

func NewExperienceList(in []experience.Experience) []ExperienceResponse {
	out := make([]ExperienceResponse, 0, len(in))
	for _, e := range in {
		out = append(out, NewExperienceResponse(e))
	}
	return out
}

type CandidateResponse struct {
	UserID     int64              `json:"user_id"`
	Email      string             `json:"email"`
	ImageFile  string             `json:"image_file"`
	Experience ExperienceResponse `json:"experience"`
}

func NewCandidateList(in []experience.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(in))
	for _, c := range in {
		out = append(out, CandidateResponse{
			UserID:     c.UserID,
			Email:      c.Email,
			ImageFile:  c.ImageFile,
			Experience: NewExperienceResponse(c.Experience),
		})
	}
	return out
}
