package memory

import (
	"context"
	"sort"

	"campus-jobs/internal/domain/meeting"
)

type MeetingRepository struct {
	s *Store
}

func (r *MeetingRepository) CreateForOwnedPosting(_ context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	if m.PostingID == nil {
		return meeting.Meeting{}, meeting.ErrMissingPostingID
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.postings[*m.PostingID]
	if !ok || p.RecruiterID != m.RecruiterID {
		return meeting.Meeting{}, meeting.ErrPostingNotOwned
	}

	pid := p.ID
	m.PostingID = &pid
	m.ID = r.s.next("meetings")
	m.CreatedAt = r.s.now()
	r.s.meetings[m.ID] = m
	return r.decorate(m), nil
}

func (r *MeetingRepository) ListForRecruiter(_ context.Context, recruiterID int64) ([]meeting.Meeting, error) {
	return r.collect(func(m meeting.Meeting) bool { return m.RecruiterID == recruiterID }), nil
}

func (r *MeetingRepository) ListForApplicant(_ context.Context, applicantID int64) ([]meeting.Meeting, error) {
	return r.collect(func(m meeting.Meeting) bool { return m.ApplicantID == applicantID }), nil
}

func (r *MeetingRepository) collect(match func(meeting.Meeting) bool) []meeting.Meeting {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]meeting.Meeting, 0)
	for _, m := range r.s.meetings {
		if match(m) {
			out = append(out, r.decorate(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MeetingTime.Equal(out[j].MeetingTime) {
			return out[i].MeetingTime.Before(out[j].MeetingTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MeetingRepository) decorate(m meeting.Meeting) meeting.Meeting {
	m.RecruiterUsername = r.s.username(m.RecruiterID)
	m.ApplicantUsername = r.s.username(m.ApplicantID)
	if m.PostingID != nil {
		pid := *m.PostingID
		m.PostingID = &pid
		m.PostingTitle = r.s.postings[pid].JobTitle
	}
	return m
}

// Count reports how many meetings are stored.
func (r *MeetingRepository) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.meetings)
}

