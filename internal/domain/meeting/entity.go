package meeting

import "time"

type Meeting struct {
	ID                int64
	RecruiterID       int64
	ApplicantID       int64
	MeetingTime       time.Time
	PostingID         *int64
	RecruiterUsername string
	ApplicantUsername string
	PostingTitle      string
	CreatedAt         time.Time
}

// TimeLayout is the datetime-local form value layout.
const TimeLayout = "2006-01-02T15:04"
