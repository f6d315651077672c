package tracker

import (
	"context"
	"errors"
	"strings"
	"time"

	"campus-jobs/internal/domain/tracker"
	"campus-jobs/internal/pkg/errs"
)

var ErrInvalidInput = errors.New("invalid input")

type CreateInput struct {
	JobLink      string
	AppliedOn    string
	LastUpdateOn string
	Status       string
}

type Service struct {
	entries tracker.Repository
}

func NewService(entries tracker.Repository) *Service {
	return &Service{entries: entries}
}

func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (tracker.Entry, error) {
	link := strings.TrimSpace(in.JobLink)
	status := strings.TrimSpace(in.Status)
	if link == "" || status == "" {
		return tracker.Entry{}, errs.Validation("job link and status are required", ErrInvalidInput)
	}
	applied, err := parseDate(in.AppliedOn)
	if err != nil {
		return tracker.Entry{}, err
	}
	last := applied
	if strings.TrimSpace(in.LastUpdateOn) != "" {
		if last, err = parseDate(in.LastUpdateOn); err != nil {
			return tracker.Entry{}, err
		}
	}

	created, err := s.entries.Create(ctx, tracker.Entry{
		UserID:       userID,
		JobLink:      link,
		AppliedOn:    applied,
		LastUpdateOn: last,
		Status:       status,
	})
	if err != nil {
		return tracker.Entry{}, errs.Internal("failed to track application", err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]tracker.Entry, error) {
	out, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Internal("failed to list tracked applications", err)
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, requesterID int64, status string) (tracker.Entry, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return tracker.Entry{}, errs.Validation("status is required", ErrInvalidInput)
	}
	if err := s.owned(ctx, id, requesterID); err != nil {
		return tracker.Entry{}, err
	}
	e, err := s.entries.UpdateStatus(ctx, id, status)
	if err != nil {
		return tracker.Entry{}, notFoundOr(err, "failed to update status")
	}
	return e, nil
}

func (s *Service) UpdateLastUpdate(ctx context.Context, id, requesterID int64, date string) (tracker.Entry, error) {
	on, err := parseDate(date)
	if err != nil {
		return tracker.Entry{}, err
	}
	if err := s.owned(ctx, id, requesterID); err != nil {
		return tracker.Entry{}, err
	}
	e, err := s.entries.UpdateLastUpdate(ctx, id, on)
	if err != nil {
		return tracker.Entry{}, notFoundOr(err, "failed to update last update date")
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id, requesterID int64) error {
	if err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return notFoundOr(err, "failed to delete tracked application")
	}
	return nil
}

func (s *Service) owned(ctx context.Context, id, requesterID int64) error {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "failed to load tracked application")
	}
	if e.UserID != requesterID {
		return errs.Forbidden("not your tracked application", nil)
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(tracker.DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, errs.Validation("dates must use YYYY-MM-DD", ErrInvalidInput)
	}
	return t, nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, tracker.ErrNotFound) {
		return errs.NotFound("tracked application not found", err)
	}
	return errs.Internal(msg, err)
}
