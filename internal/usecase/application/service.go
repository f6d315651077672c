package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/posting"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/events"
	"campus-jobs/internal/pkg/errs"
)

var (
	ErrRecruiterMismatch = errors.New("recruiter does not own the posting")
	ErrNotRecruiter      = errors.New("recruiter role required")
)

type ApplyInput struct {
	PostingID int64
	// RecruiterID is optional; zero means "the posting's recruiter".
	RecruiterID int64
	ApplicantID int64
}

// ShortlistGroup is one owned posting with the applicants shortlisted for it.
type ShortlistGroup struct {
	Posting    posting.Posting
	Applicants []application.Application
}

type Service struct {
	applications application.Repository
	postings     posting.Repository
	users        user.Repository
	events       events.Publisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(applications application.Repository, postings posting.Repository, users user.Repository, pub events.Publisher, logger *zap.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		applications: applications,
		postings:     postings,
		users:        users,
		events:       pub,
		logger:       logger,
		now:          time.Now,
	}
}

// Apply records an application. Applying twice is not an error; the second
// call reports AlreadyExists and leaves the stored row untouched.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (application.ApplyResult, error) {
	p, err := s.loadPosting(ctx, in.PostingID)
	if err != nil {
		return "", err
	}
	recruiterID := in.RecruiterID
	if recruiterID == 0 {
		recruiterID = p.RecruiterID
	}
	if recruiterID != p.RecruiterID {
		return "", errs.Validation("recruiter does not match the posting", ErrRecruiterMismatch)
	}

	res, err := s.applications.Apply(ctx, p.ID, recruiterID, in.ApplicantID)
	if err != nil {
		return "", errs.Internal("failed to apply", err)
	}

	if res == application.Created {
		events.Emit(ctx, s.events, s.logger, events.SubjectApplicationCreated, events.ApplicationEvent{
			PostingID:   p.ID,
			RecruiterID: recruiterID,
			ApplicantID: in.ApplicantID,
			At:          s.now().UTC(),
		})
	}
	return res, nil
}

func (s *Service) ListForPosting(ctx context.Context, postingID, requesterID int64) ([]application.Application, error) {
	p, err := s.loadPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if p.RecruiterID != requesterID {
		return nil, errs.Forbidden("only the owning recruiter can view applications", nil)
	}

	out, err := s.applications.ListForPosting(ctx, postingID)
	if err != nil {
		return nil, errs.Internal("failed to list applications", err)
	}
	return out, nil
}

func (s *Service) ToggleShortlist(ctx context.Context, postingID, recruiterID, applicantID int64) (bool, error) {
	shortlisted, err := s.applications.ToggleShortlist(ctx, postingID, recruiterID, applicantID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return false, errs.NotFound("application not found", err)
		}
		return false, errs.Internal("failed to toggle shortlist", err)
	}

	events.Emit(ctx, s.events, s.logger, events.SubjectShortlistToggled, events.ApplicationEvent{
		PostingID:   postingID,
		RecruiterID: recruiterID,
		ApplicantID: applicantID,
		Shortlisted: shortlisted,
		At:          s.now().UTC(),
	})
	return shortlisted, nil
}

// ListShortlisted returns shortlisted applicants for one owned posting, or for
// every posting the recruiter owns when postingID is nil.
func (s *Service) ListShortlisted(ctx context.Context, recruiterID int64, postingID *int64) ([]ShortlistGroup, error) {
	if postingID != nil {
		p, err := s.postings.GetByID(ctx, *postingID)
		if err != nil && !errors.Is(err, posting.ErrNotFound) {
			return nil, errs.Internal("failed to load posting", err)
		}
		if err != nil || p.RecruiterID != recruiterID {
			return nil, errs.NotFound("posting not found", posting.ErrNotFound)
		}
		g, err := s.group(ctx, p)
		if err != nil {
			return nil, err
		}
		return []ShortlistGroup{g}, nil
	}

	u, err := s.users.GetByID(ctx, recruiterID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errs.Unauthenticated("account no longer exists", err)
		}
		return nil, errs.Internal("failed to load user", err)
	}
	if !u.IsRecruiter {
		return nil, errs.Forbidden("recruiter role required", ErrNotRecruiter)
	}

	owned, err := s.postings.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, errs.Internal("failed to list postings", err)
	}
	out := make([]ShortlistGroup, 0, len(owned))
	for _, p := range owned {
		g, err := s.group(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *Service) ListMine(ctx context.Context, applicantID int64) ([]application.Application, error) {
	out, err := s.applications.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, errs.Internal("failed to list applications", err)
	}
	return out, nil
}

func (s *Service) group(ctx context.Context, p posting.Posting) (ShortlistGroup, error) {
	apps, err := s.applications.ListShortlisted(ctx, p.ID)
	if err != nil {
		return ShortlistGroup{}, errs.Internal("failed to list shortlisted applicants", err)
	}
	return ShortlistGroup{Posting: p, Applicants: apps}, nil
}

func (s *Service) loadPosting(ctx context.Context, id int64) (posting.Posting, error) {
	p, err := s.postings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, posting.ErrNotFound) {
			return posting.Posting{}, errs.NotFound("posting not found", err)
		}
		return posting.Posting{}, errs.Internal("failed to load posting", err)
	}
	return p, nil
}
