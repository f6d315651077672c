package dto

import (
	"time"

	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/posting"
	ucapplication "campus-jobs/internal/usecase/application"
)

type PostingResponse struct {
	ID                int64     `json:"posting_id"`
	RecruiterID       int64     `json:"recruiter_id"`
	RecruiterUsername string    `json:"recruiter_username"`
	JobTitle          string    `json:"job_title"`
	JobDescription    string    `json:"job_description"`
	JobLink           string    `json:"job_link"`
	JobLocation       string    `json:"job_location"`
	JobPayRate        string    `json:"job_pay_rate"`
	MaxHoursAllowed   int       `json:"max_hours_allowed"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewPostingResponse(p posting.Posting) PostingResponse {
	return PostingResponse{
		ID:                p.ID,
		RecruiterID:       p.RecruiterID,
		RecruiterUsername: p.RecruiterUsername,
		JobTitle:          p.JobTitle,
		JobDescription:    p.JobDescription,
		JobLink:           p.JobLink,
		JobLocation:       p.JobLocation,
		JobPayRate:        p.JobPayRate,
		MaxHoursAllowed:   p.MaxHoursAllowed,
		CreatedAt:         p.CreatedAt,
	}
}

func NewPostingList(in []posting.Posting) []PostingResponse {
	out := make([]PostingResponse, 0, len(in))
	for _, p := range in {
		out = append(out, NewPostingResponse(p))
	}
	return out
}

type ApplicationResponse struct {
	ID                int64     `json:"id"`
	PostingID         int64     `json:"posting_id"`
	PostingTitle      string    `json:"posting_title,omitempty"`
	RecruiterID       int64     `json:"recruiter_id"`
	ApplicantID       int64     `json:"applicant_id"`
	ApplicantUsername string    `json:"applicant_username"`
	ApplicantEmail    string    `json:"applicant_email"`
	Shortlisted       bool      `json:"shortlisted"`
	AppliedAt         time.Time `json:"applied_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                a.ID,
		PostingID:         a.PostingID,
		PostingTitle:      a.PostingTitle,
		RecruiterID:       a.RecruiterID,
		ApplicantID:       a.ApplicantID,
		ApplicantUsername: a.ApplicantUsername,
		ApplicantEmail:    a.ApplicantEmail,
		Shortlisted:       a.Shortlisted,
		AppliedAt:         a.AppliedAt,
	}
}

func NewApplicationList(in []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(in))
	for _, a := range in {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

type ApplyResponse struct {
	PostingID int64  `json:"posting_id"`
	Result    string `json:"result"`
}

type ShortlistToggleResponse struct {
	PostingID   int64 `json:"posting_id"`
	ApplicantID int64 `json:"applicant_id"`
	Shortlisted bool  `json:"shortlisted"`
}

type ShortlistGroupResponse struct {
	Posting    PostingResponse       `json:"posting"`
	Applicants []ApplicationResponse `json:"applicants"`
}

func NewShortlistGroups(in []ucapplication.ShortlistGroup) []ShortlistGroupResponse {
	out := make([]ShortlistGroupResponse, 0, len(in))
	for _, g := range in {
		out = append(out, ShortlistGroupResponse{
			Posting:    NewPostingResponse(g.Posting),
			Applicants: NewApplicationList(g.Applicants),
		})
	}
	return out
}
