package experience

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"campus-jobs/internal/domain/experience"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/sanitize"
)

var (
	ErrNotRecruiter      = errors.New("recruiter role required")
	ErrUnknownSearchType = errors.New("unknown search type")
	ErrInvalidInput      = errors.New("invalid input")
)

type AddInput struct {
	JobTitle    string
	CompanyName string
	Location    string
	Duration    string
	Description string
	Skills      string
}

type Service struct {
	experiences experience.Repository
	users       user.Repository
	policy      *bluemonday.Policy
}

func NewService(experiences experience.Repository, users user.Repository) *Service {
	return &Service{experiences: experiences, users: users, policy: bluemonday.StrictPolicy()}
}

// Add stores a work history entry for the account identified by userID.
func (s *Service) Add(ctx context.Context, userID int64, in AddInput) (experience.Experience, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return experience.Experience{}, errs.Unauthenticated("account no longer exists", err)
		}
		return experience.Experience{}, errs.Internal("failed to load user", err)
	}

	e := experience.Experience{
		Username:    u.Username,
		JobTitle:    s.clean(in.JobTitle),
		CompanyName: s.clean(in.CompanyName),
		Location:    s.clean(in.Location),
		Duration:    s.clean(in.Duration),
		Description: s.clean(in.Description),
	}
	if skills := s.clean(in.Skills); skills != "" {
		e.Skills = &skills
	}
	if e.JobTitle == "" || e.CompanyName == "" {
		return experience.Experience{}, errs.Validation("job title and company name are required", ErrInvalidInput)
	}

	created, err := s.experiences.Create(ctx, e)
	if err != nil {
		return experience.Experience{}, errs.Internal("failed to add experience", err)
	}
	return created, nil
}

func (s *Service) ListByUsername(ctx context.Context, username string) ([]experience.Experience, error) {
	out, err := s.experiences.ListByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, errs.Internal("failed to list experiences", err)
	}
	return out, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]experience.Experience, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errs.Unauthenticated("account no longer exists", err)
		}
		return nil, errs.Internal("failed to load user", err)
	}
	return s.ListByUsername(ctx, u.Username)
}

// SearchCandidates is limited to recruiters. An empty query returns every
// candidate regardless of searchType.
func (s *Service) SearchCandidates(ctx context.Context, requesterID int64, searchType, query string) ([]experience.Candidate, error) {
	u, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errs.Unauthenticated("account no longer exists", err)
		}
		return nil, errs.Internal("failed to load user", err)
	}
	if !u.IsRecruiter {
		return nil, errs.Forbidden("only recruiters can search candidates", ErrNotRecruiter)
	}

	query = strings.TrimSpace(query)
	t := experience.SearchType(strings.ToLower(strings.TrimSpace(searchType)))
	if query != "" && !t.Valid() {
		return nil, errs.Validation("search type must be role or skills", ErrUnknownSearchType)
	}

	out, err := s.experiences.SearchCandidates(ctx, t, query)
	if err != nil {
		return nil, errs.Internal("failed to search candidates", err)
	}
	return out, nil
}

func (s *Service) clean(v string) string {
	return sanitize.Text(s.policy, v)
}
