package review

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("review not found")

type Repository interface {
	Create(ctx context.Context, r Review) (Review, error)
	GetByID(ctx context.Context, id int64) (Review, error)
	// Update overwrites the editable fields of the review owned by r.UserID.
	Update(ctx context.Context, r Review) (Review, error)
	Delete(ctx context.Context, id, userID int64) error
	Upvote(ctx context.Context, id int64) (int, error)
	// Downvote decrements only while the count is positive and returns the
	// count after the call.
	Downvote(ctx context.Context, id int64) (int, error)
	Search(ctx context.Context, f Filter, limit, offset int) ([]Review, int, error)
}
