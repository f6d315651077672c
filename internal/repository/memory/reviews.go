package memory

import (
	"context"
	"sort"
	"strings"

	"campus-jobs/internal/domain/review"
)

type ReviewRepository struct {
	s *Store
}

func (r *ReviewRepository) Create(_ context.Context, rv review.Review) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv.ID = r.s.next("reviews")
	rv.Upvotes = 0
	rv.CreatedAt = r.s.now()
	r.s.reviews[rv.ID] = rv
	return r.withAuthor(rv), nil
}

func (r *ReviewRepository) GetByID(_ context.Context, id int64) (review.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rv, ok := r.s.reviews[id]
	if !ok {
		return review.Review{}, review.ErrNotFound
	}
	return r.withAuthor(rv), nil
}

func (r *ReviewRepository) Update(_ context.Context, rv review.Review) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.reviews[rv.ID]
	if !ok || cur.UserID != rv.UserID {
		return review.Review{}, review.ErrNotFound
	}
	rv.Upvotes = cur.Upvotes
	rv.CreatedAt = cur.CreatedAt
	r.s.reviews[rv.ID] = rv
	return r.withAuthor(rv), nil
}

func (r *ReviewRepository) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.reviews[id]
	if !ok || cur.UserID != userID {
		return review.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *ReviewRepository) Upvote(_ context.Context, id int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv, ok := r.s.reviews[id]
	if !ok {
		return 0, review.ErrNotFound
	}
	rv.Upvotes++
	r.s.reviews[id] = rv
	return rv.Upvotes, nil
}

func (r *ReviewRepository) Downvote(_ context.Context, id int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv, ok := r.s.reviews[id]
	if !ok {
		return 0, review.ErrNotFound
	}
	if rv.Upvotes > 0 {
		rv.Upvotes--
		r.s.reviews[id] = rv
	}
	return rv.Upvotes, nil
}

func (r *ReviewRepository) Search(_ context.Context, f review.Filter, limit, offset int) ([]review.Review, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	title := strings.ToLower(strings.TrimSpace(f.Title))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	matched := make([]review.Review, 0)
	for _, rv := range r.s.reviews {
		if title != "" && !strings.Contains(strings.ToLower(rv.JobTitle), title) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(rv.Locations), location) {
			continue
		}
		if f.MinRating != nil && rv.Rating < *f.MinRating {
			continue
		}
		if f.MaxRating != nil && rv.Rating > *f.MaxRating {
			continue
		}
		matched = append(matched, r.withAuthor(rv))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if offset >= total {
		return []review.Review{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *ReviewRepository) withAuthor(rv review.Review) review.Review {
	rv.AuthorUsername = r.s.username(rv.UserID)
	return rv
}
