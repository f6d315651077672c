package tracker

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("tracked application not found")

type Repository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	GetByID(ctx context.Context, id int64) (Entry, error)
	ListByUser(ctx context.Context, userID int64) ([]Entry, error)
	UpdateStatus(ctx context.Context, id int64, status string) (Entry, error)
	UpdateLastUpdate(ctx context.Context, id int64, on time.Time) (Entry, error)
	Delete(ctx context.Context, id int64) error
}
