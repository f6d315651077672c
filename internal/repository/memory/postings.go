package memory

import (
	"context"
	"sort"

	"campus-jobs/internal/domain/posting"
)

type PostingRepository struct {
	s *Store
}

func (r *PostingRepository) Create(_ context.Context, p posting.Posting) (posting.Posting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.postings[p.ID]; ok {
		return posting.Posting{}, posting.ErrDuplicateID
	}
	p.CreatedAt = r.s.now()
	r.s.postings[p.ID] = p
	return r.withRecruiter(p), nil
}

func (r *PostingRepository) GetByID(_ context.Context, id int64) (posting.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.postings[id]
	if !ok {
		return posting.Posting{}, posting.ErrNotFound
	}
	return r.withRecruiter(p), nil
}

func (r *PostingRepository) List(_ context.Context) ([]posting.Posting, error) {
	return r.collect(func(posting.Posting) bool { return true }), nil
}

func (r *PostingRepository) ListByRecruiter(_ context.Context, recruiterID int64) ([]posting.Posting, error) {
	return r.collect(func(p posting.Posting) bool { return p.RecruiterID == recruiterID }), nil
}

func (r *PostingRepository) Latest(_ context.Context, limit int) ([]posting.Posting, error) {
	if limit <= 0 {
		limit = 20
	}
	out := r.collect(func(posting.Posting) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PostingRepository) DeleteWithApplications(_ context.Context, id, recruiterID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.postings[id]
	if !ok || p.RecruiterID != recruiterID {
		return posting.ErrNotFound
	}
	for k := range r.s.apps {
		if k.postingID == id {
			delete(r.s.apps, k)
		}
	}
	for mid, m := range r.s.meetings {
		if m.PostingID != nil && *m.PostingID == id {
			m.PostingID = nil
			r.s.meetings[mid] = m
		}
	}
	delete(r.s.postings, id)
	return nil
}

func (r *PostingRepository) collect(match func(posting.Posting) bool) []posting.Posting {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]posting.Posting, 0)
	for _, p := range r.s.postings {
		if match(p) {
			out = append(out, r.withRecruiter(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *PostingRepository) withRecruiter(p posting.Posting) posting.Posting {
	p.RecruiterUsername = r.s.username(p.RecruiterID)
	return p
}
