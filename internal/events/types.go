package events

import "time"

type PostingEvent struct {
	PostingID   int64     `json:"posting_id"`
	RecruiterID int64     `json:"recruiter_id"`
	JobTitle    string    `json:"job_title,omitempty"`
	At          time.Time `json:"at"`
}

type ApplicationEvent struct {
	PostingID   int64     `json:"posting_id"`
	RecruiterID int64     `json:"recruiter_id"`
	ApplicantID int64     `json:"applicant_id"`
	Shortlisted bool      `json:"shortlisted"`
	At          time.Time `json:"at"`
}

type MeetingEvent struct {
	MeetingID   int64     `json:"meeting_id"`
	PostingID   int64     `json:"posting_id"`
	RecruiterID int64     `json:"recruiter_id"`
	ApplicantID int64     `json:"applicant_id"`
	MeetingTime time.Time `json:"meeting_time"`
}

type FeedEvent struct {
	Count       int       `json:"count"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
