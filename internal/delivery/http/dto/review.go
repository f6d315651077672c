package dto

import (
	"time"

	"campus-jobs/internal/domain/review"
)

type ReviewResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Author         string    `json:"author"`
	Department     string    `json:"department"`
	Locations      string    `json:"locations"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
	HourlyPay      string    `json:"hourly_pay"`
	Benefits       string    `json:"benefits"`
	Review         string    `json:"review"`
	Rating         int       `json:"rating"`
	Recommendation bool      `json:"recommendation"`
	Upvotes        int       `json:"upvotes"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewReviewResponse(r review.Review) ReviewResponse {
	return ReviewResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		Author:         r.AuthorUsername,
		Department:     r.Department,
		Locations:      r.Locations,
		JobTitle:       r.JobTitle,
		JobDescription: r.JobDescription,
		HourlyPay:      r.HourlyPay,
		Benefits:       r.Benefits,
		Review:         r.Review,
		Rating:         r.Rating,
		Recommendation: r.Recommendation,
		Upvotes:        r.Upvotes,
		CreatedAt:      r.CreatedAt,
	}
}

func NewReviewList(in []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(in))
	for _, r := range in {
		out = append(out, NewReviewResponse(r))
	}
	return out
}

type VoteResponse struct {
	ID      int64 `json:"id"`
	Upvotes int   `json:"upvotes"`
}
