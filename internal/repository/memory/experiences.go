package memory

import (
	"context"
	"sort"
	"strings"

	"campus-jobs/internal/domain/experience"
)

type ExperienceRepository struct {
	s *Store
}

func (r *ExperienceRepository) Create(_ context.Context, e experience.Experience) (experience.Experience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e.ID = r.s.next("job_experiences")
	e.CreatedAt = r.s.now()
	r.s.experiences[e.ID] = e
	return e, nil
}

func (r *ExperienceRepository) ListByUsername(_ context.Context, username string) ([]experience.Experience, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]experience.Experience, 0)
	for _, e := range r.s.experiences {
		if e.Username == username {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ExperienceRepository) SearchCandidates(_ context.Context, t experience.SearchType, query string) ([]experience.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]experience.Candidate, 0)
	for _, e := range r.s.experiences {
		owner, ok := r.s.userByUsername(e.Username)
		if !ok || owner.IsRecruiter {
			continue
		}

		if q != "" {
			field := e.JobTitle
			if t == experience.SearchBySkills {
				if e.Skills == nil {
					continue
				}
				field = *e.Skills
			}
			if !strings.Contains(strings.ToLower(field), q) {
				continue
			}
		}

		out = append(out, experience.Candidate{
			Experience: e,
			UserID:     owner.ID,
			Email:      owner.Email,
			ImageFile:  owner.ImageFile,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Experience.ID < out[j].Experience.ID })
	return out, nil
}
