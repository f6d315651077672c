package posting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"campus-jobs/internal/domain/posting"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/events"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/sanitize"
)

const rssSize = 20

var (
	ErrNotRecruiter = errors.New("recruiter role required")
	ErrInvalidInput = errors.New("invalid input")
)

type CreateInput struct {
	PostingID       int64
	JobTitle        string
	JobDescription  string
	JobLink         string
	JobLocation     string
	JobPayRate      string
	MaxHoursAllowed int
}

type Service struct {
	postings posting.Repository
	users    user.Repository
	events   events.Publisher
	logger   *zap.Logger
	policy   *bluemonday.Policy
	now      func() time.Time
}

func NewService(postings posting.Repository, users user.Repository, pub events.Publisher, logger *zap.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		postings: postings,
		users:    users,
		events:   pub,
		logger:   logger,
		policy:   bluemonday.StrictPolicy(),
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, recruiterID int64, in CreateInput) (posting.Posting, error) {
	if err := s.requireRecruiter(ctx, recruiterID); err != nil {
		return posting.Posting{}, err
	}
	if in.PostingID <= 0 {
		return posting.Posting{}, errs.Validation("posting id must be a positive number", ErrInvalidInput)
	}
	if in.MaxHoursAllowed < 0 {
		return posting.Posting{}, errs.Validation("max hours allowed cannot be negative", ErrInvalidInput)
	}

	p := posting.Posting{
		ID:              in.PostingID,
		RecruiterID:     recruiterID,
		JobTitle:        s.clean(in.JobTitle),
		JobDescription:  s.clean(in.JobDescription),
		JobLink:         strings.TrimSpace(in.JobLink),
		JobLocation:     s.clean(in.JobLocation),
		JobPayRate:      s.clean(in.JobPayRate),
		MaxHoursAllowed: in.MaxHoursAllowed,
	}
	if p.JobTitle == "" {
		return posting.Posting{}, errs.Validation("job title is required", ErrInvalidInput)
	}

	created, err := s.postings.Create(ctx, p)
	if err != nil {
		if errors.Is(err, posting.ErrDuplicateID) {
			return posting.Posting{}, errs.Duplicate("posting id already exists", err)
		}
		return posting.Posting{}, errs.Internal("failed to create posting", err)
	}

	events.Emit(ctx, s.events, s.logger, events.SubjectPostingCreated, events.PostingEvent{
		PostingID:   created.ID,
		RecruiterID: created.RecruiterID,
		JobTitle:    created.JobTitle,
		At:          s.now().UTC(),
	})
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (posting.Posting, error) {
	p, err := s.postings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, posting.ErrNotFound) {
			return posting.Posting{}, errs.NotFound("posting not found", err)
		}
		return posting.Posting{}, errs.Internal("failed to load posting", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]posting.Posting, error) {
	out, err := s.postings.List(ctx)
	if err != nil {
		return nil, errs.Internal("failed to list postings", err)
	}
	return out, nil
}

func (s *Service) ListByRecruiter(ctx context.Context, recruiterID int64) ([]posting.Posting, error) {
	if err := s.requireRecruiter(ctx, recruiterID); err != nil {
		return nil, err
	}
	out, err := s.postings.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, errs.Internal("failed to list postings", err)
	}
	return out, nil
}

// Delete removes a posting and all of its applications. Either both go or
// neither does.
func (s *Service) Delete(ctx context.Context, id, requesterID int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.RecruiterID != requesterID {
		return errs.Forbidden("only the owning recruiter can delete this posting", nil)
	}

	if err := s.postings.DeleteWithApplications(ctx, id, requesterID); err != nil {
		if errors.Is(err, posting.ErrNotFound) {
			return errs.NotFound("posting not found", err)
		}
		return errs.Internal("failed to delete posting", err)
	}

	events.Emit(ctx, s.events, s.logger, events.SubjectPostingDeleted, events.PostingEvent{
		PostingID:   id,
		RecruiterID: requesterID,
		At:          s.now().UTC(),
	})
	return nil
}

// RSS renders the newest postings as an RSS 2.0 document. baseURL is the
// public origin used for item links.
func (s *Service) RSS(ctx context.Context, baseURL string) (string, error) {
	latest, err := s.postings.Latest(ctx, rssSize)
	if err != nil {
		return "", errs.Internal("failed to load postings", err)
	}

	baseURL = strings.TrimRight(baseURL, "/")
	feed := &feeds.Feed{
		Title:       "Campus Jobs",
		Link:        &feeds.Link{Href: baseURL},
		Description: "Latest job postings",
		Created:     s.now(),
	}
	for _, p := range latest {
		item := &feeds.Item{
			Id:          fmt.Sprintf("%s/api/v1/postings/%d", baseURL, p.ID),
			Title:       p.JobTitle,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/api/v1/postings/%d", baseURL, p.ID)},
			Description: p.JobDescription,
			Created:     p.CreatedAt,
		}
		if p.JobLocation != "" {
			item.Title = fmt.Sprintf("%s - %s", p.JobTitle, p.JobLocation)
		}
		if p.RecruiterUsername != "" {
			item.Author = &feeds.Author{Name: p.RecruiterUsername}
		}
		feed.Items = append(feed.Items, item)
	}

	out, err := feed.ToRss()
	if err != nil {
		return "", errs.Internal("failed to render rss", err)
	}
	return out, nil
}

func (s *Service) requireRecruiter(ctx context.Context, userID int64) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return errs.Unauthenticated("account no longer exists", err)
		}
		return errs.Internal("failed to load user", err)
	}
	if !u.IsRecruiter {
		return errs.Forbidden("recruiter role required", ErrNotRecruiter)
	}
	return nil
}

func (s *Service) clean(v string) string {
	return sanitize.Text(s.policy, v)
}
