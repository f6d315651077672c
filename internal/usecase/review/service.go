package review

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"campus-jobs/internal/domain/review"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/sanitize"
)

const (
	DefaultPageSize = 5
	MaxPageSize     = 50
)

var ErrInvalidInput = errors.New("invalid input")

type Fields struct {
	Department     string
	Locations      string
	JobTitle       string
	JobDescription string
	HourlyPay      string
	Benefits       string
	Review         string
	Rating         int
	Recommendation bool
}

type SearchInput struct {
	Title     string
	Location  string
	MinRating *int
	MaxRating *int
	Page      int
	PageSize  int
}

type Page struct {
	Items    []review.Review
	Total    int
	Page     int
	PageSize int
}

func (p Page) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

type Service struct {
	reviews review.Repository
	policy  *bluemonday.Policy
}

func NewService(reviews review.Repository) *Service {
	return &Service{reviews: reviews, policy: bluemonday.StrictPolicy()}
}

func (s *Service) Create(ctx context.Context, authorID int64, f Fields) (review.Review, error) {
	rv, err := s.build(f)
	if err != nil {
		return review.Review{}, err
	}
	rv.UserID = authorID

	created, err := s.reviews.Create(ctx, rv)
	if err != nil {
		return review.Review{}, errs.Internal("failed to create review", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (review.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return review.Review{}, notFoundOr(err, "failed to load review")
	}
	return rv, nil
}

func (s *Service) Update(ctx context.Context, id, requesterID int64, f Fields) (review.Review, error) {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return review.Review{}, err
	}

	rv, err := s.build(f)
	if err != nil {
		return review.Review{}, err
	}
	rv.ID = id
	rv.UserID = requesterID

	updated, err := s.reviews.Update(ctx, rv)
	if err != nil {
		return review.Review{}, notFoundOr(err, "failed to update review")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, requesterID int64) error {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id, requesterID); err != nil {
		return notFoundOr(err, "failed to delete review")
	}
	return nil
}

func (s *Service) Upvote(ctx context.Context, id int64) (int, error) {
	n, err := s.reviews.Upvote(ctx, id)
	if err != nil {
		return 0, notFoundOr(err, "failed to upvote review")
	}
	return n, nil
}

func (s *Service) Downvote(ctx context.Context, id int64) (int, error) {
	n, err := s.reviews.Downvote(ctx, id)
	if err != nil {
		return 0, notFoundOr(err, "failed to downvote review")
	}
	return n, nil
}

func (s *Service) Search(ctx context.Context, in SearchInput) (Page, error) {
	page := in.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return Page{}, errs.Validation("page must be at least 1", ErrInvalidInput)
	}
	size := in.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if err := checkRating(in.MinRating); err != nil {
		return Page{}, err
	}
	if err := checkRating(in.MaxRating); err != nil {
		return Page{}, err
	}

	f := review.Filter{
		Title:     strings.TrimSpace(in.Title),
		Location:  strings.TrimSpace(in.Location),
		MinRating: in.MinRating,
		MaxRating: in.MaxRating,
	}
	items, total, err := s.reviews.Search(ctx, f, size, (page-1)*size)
	if err != nil {
		return Page{}, errs.Internal("failed to search reviews", err)
	}
	return Page{Items: items, Total: total, Page: page, PageSize: size}, nil
}

func (s *Service) owned(ctx context.Context, id, requesterID int64) (review.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return review.Review{}, notFoundOr(err, "failed to load review")
	}
	if rv.UserID != requesterID {
		return review.Review{}, errs.Forbidden("only the author can change this review", nil)
	}
	return rv, nil
}

func (s *Service) build(f Fields) (review.Review, error) {
	if f.Rating < review.MinRating || f.Rating > review.MaxRating {
		return review.Review{}, errs.Validation("rating must be between 1 and 5", ErrInvalidInput)
	}
	rv := review.Review{
		Department:     s.clean(f.Department),
		Locations:      s.clean(f.Locations),
		JobTitle:       s.clean(f.JobTitle),
		JobDescription: s.clean(f.JobDescription),
		HourlyPay:      s.clean(f.HourlyPay),
		Benefits:       s.clean(f.Benefits),
		Review:         s.clean(f.Review),
		Rating:         f.Rating,
		Recommendation: f.Recommendation,
	}
	if rv.JobTitle == "" || rv.Review == "" {
		return review.Review{}, errs.Validation("job title and review are required", ErrInvalidInput)
	}
	return rv, nil
}

func (s *Service) clean(v string) string {
	return sanitize.Text(s.policy, v)
}

func checkRating(v *int) error {
	if v != nil && (*v < review.MinRating || *v > review.MaxRating) {
		return errs.Validation("rating filter must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, review.ErrNotFound) {
		return errs.NotFound("review not found", err)
	}
	return errs.Internal(msg, err)
}
