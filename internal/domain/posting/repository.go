package posting

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("posting not found")
	ErrDuplicateID = errors.New("posting id already exists")
)

type Repository interface {
	Create(ctx context.Context, p Posting) (Posting, error)
	GetByID(ctx context.Context, id int64) (Posting, error)
	List(ctx context.Context) ([]Posting, error)
	ListByRecruiter(ctx context.Context, recruiterID int64) ([]Posting, error)
	Latest(ctx context.Context, limit int) ([]Posting, error)
	// DeleteWithApplications removes the posting owned by recruiterID and
	// every application to it in one transaction. ErrNotFound means nothing
	// was removed.
	DeleteWithApplications(ctx context.Context, id, recruiterID int64) error
}
