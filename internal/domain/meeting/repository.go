package meeting

import (
	"context"
	"errors"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid meeting time format")
	ErrMissingPostingID  = errors.New("posting id is required")
	ErrInvalidPostingID  = errors.New("posting id must be numeric")
	ErrApplicantNotFound = errors.New("applicant not found")
	ErrPostingNotOwned   = errors.New("posting not found or not owned by recruiter")
)

type Repository interface {
	// CreateForOwnedPosting inserts m only if *m.PostingID exists and belongs
	// to m.RecruiterID, otherwise it returns ErrPostingNotOwned and writes
	// nothing.
	CreateForOwnedPosting(ctx context.Context, m Meeting) (Meeting, error)
	ListForRecruiter(ctx context.Context, recruiterID int64) ([]Meeting, error)
	ListForApplicant(ctx context.Context, applicantID int64) ([]Meeting, error)
}
