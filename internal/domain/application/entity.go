package application

import "time"

type Application struct {
	ID                int64
	PostingID         int64
	RecruiterID       int64
	ApplicantID       int64
	ApplicantUsername string
	ApplicantEmail    string
	PostingTitle      string
	Shortlisted       bool
	AppliedAt         time.Time
}

type ApplyResult string

const (
	Created       ApplyResult = "created"
	AlreadyExists ApplyResult = "already_exists"
)
