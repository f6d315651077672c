package application

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("application not found")

type Repository interface {
	// Apply inserts the (posting, recruiter, applicant) triple unless it
	// already exists.
	Apply(ctx context.Context, postingID, recruiterID, applicantID int64) (ApplyResult, error)
	ListForPosting(ctx context.Context, postingID int64) ([]Application, error)
	ToggleShortlist(ctx context.Context, postingID, recruiterID, applicantID int64) (bool, error)
	ListShortlisted(ctx context.Context, postingID int64) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID int64) ([]Application, error)
}
