package dto

import (
	"time"

	"campus-jobs/internal/domain/meeting"
	ucmeeting "campus-jobs/internal/usecase/meeting"
)

type MeetingResponse struct {
	ID                int64     `json:"id"`
	RecruiterID       int64     `json:"recruiter_id"`
	RecruiterUsername string    `json:"recruiter_username,omitempty"`
	ApplicantID       int64     `json:"applicant_id"`
	ApplicantUsername string    `json:"applicant_username,omitempty"`
	PostingID         *int64    `json:"posting_id"`
	PostingTitle      string    `json:"posting_title,omitempty"`
	MeetingTime       time.Time `json:"meeting_time"`
	When              string    `json:"when,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewMeetingResponse(m meeting.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:                m.ID,
		RecruiterID:       m.RecruiterID,
		RecruiterUsername: m.RecruiterUsername,
		ApplicantID:       m.ApplicantID,
		ApplicantUsername: m.ApplicantUsername,
		PostingID:         m.PostingID,
		PostingTitle:      m.PostingTitle,
		MeetingTime:       m.MeetingTime,
		CreatedAt:         m.CreatedAt,
	}
}

func NewMeetingList(in []ucmeeting.Listed) []MeetingResponse {
	out := make([]MeetingResponse, 0, len(in))
	for _, l := range in {
		r := NewMeetingResponse(l.Meeting)
		r.When = l.When
		out = append(out, r)
	}
	return out
}
