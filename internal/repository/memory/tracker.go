package memory

import (
	"context"
	"sort"
	"time"

	"campus-jobs/internal/domain/tracker"
)

type TrackerRepository struct {
	s *Store
}

func (r *TrackerRepository) Create(_ context.Context, e tracker.Entry) (tracker.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e.ID = r.s.next("job_applications")
	e.CreatedAt = r.s.now()
	r.s.tracked[e.ID] = e
	return e, nil
}

func (r *TrackerRepository) GetByID(_ context.Context, id int64) (tracker.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.tracked[id]
	if !ok {
		return tracker.Entry{}, tracker.ErrNotFound
	}
	return e, nil
}

func (r *TrackerRepository) ListByUser(_ context.Context, userID int64) ([]tracker.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]tracker.Entry, 0)
	for _, e := range r.s.tracked {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppliedOn.Equal(out[j].AppliedOn) {
			return out[i].AppliedOn.After(out[j].AppliedOn)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *TrackerRepository) UpdateStatus(_ context.Context, id int64, status string) (tracker.Entry, error) {
	return r.update(id, func(e *tracker.Entry) { e.Status = status })
}

func (r *TrackerRepository) UpdateLastUpdate(_ context.Context, id int64, on time.Time) (tracker.Entry, error) {
	return r.update(id, func(e *tracker.Entry) { e.LastUpdateOn = on })
}

func (r *TrackerRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tracked[id]; !ok {
		return tracker.ErrNotFound
	}
	delete(r.s.tracked, id)
	return nil
}

func (r *TrackerRepository) update(id int64, fn func(*tracker.Entry)) (tracker.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.tracked[id]
	if !ok {
		return tracker.Entry{}, tracker.ErrNotFound
	}
	fn(&e)
	r.s.tracked[id] = e
	return e, nil
}
