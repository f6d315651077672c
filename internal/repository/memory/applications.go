package memory

import (
	"context"
	"sort"

	"campus-jobs/internal/domain/application"
)

type ApplicationRepository struct {
	s *Store
}

func (r *ApplicationRepository) Apply(_ context.Context, postingID, recruiterID, applicantID int64) (application.ApplyResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := appKey{postingID: postingID, recruiterID: recruiterID, applicantID: applicantID}
	if _, ok := r.s.apps[k]; ok {
		return application.AlreadyExists, nil
	}
	r.s.apps[k] = application.Application{
		ID:          r.s.next("posting_applications"),
		PostingID:   postingID,
		RecruiterID: recruiterID,
		ApplicantID: applicantID,
		AppliedAt:   r.s.now(),
	}
	return application.Created, nil
}

func (r *ApplicationRepository) ListForPosting(_ context.Context, postingID int64) ([]application.Application, error) {
	return r.collect(func(a application.Application) bool { return a.PostingID == postingID }, byID), nil
}

func (r *ApplicationRepository) ToggleShortlist(_ context.Context, postingID, recruiterID, applicantID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := appKey{postingID: postingID, recruiterID: recruiterID, applicantID: applicantID}
	a, ok := r.s.apps[k]
	if !ok {
		return false, application.ErrNotFound
	}
	a.Shortlisted = !a.Shortlisted
	r.s.apps[k] = a
	return a.Shortlisted, nil
}

func (r *ApplicationRepository) ListShortlisted(_ context.Context, postingID int64) ([]application.Application, error) {
	return r.collect(func(a application.Application) bool {
		return a.PostingID == postingID && a.Shortlisted
	}, byID), nil
}

func (r *ApplicationRepository) ListByApplicant(_ context.Context, applicantID int64) ([]application.Application, error) {
	return r.collect(func(a application.Application) bool { return a.ApplicantID == applicantID }, newestFirst), nil
}

func byID(a, b application.Application) bool {
	return a.ID < b.ID
}

func newestFirst(a, b application.Application) bool {
	if !a.AppliedAt.Equal(b.AppliedAt) {
		return a.AppliedAt.After(b.AppliedAt)
	}
	return a.ID > b.ID
}

func (r *ApplicationRepository) collect(match func(application.Application) bool, less func(a, b application.Application) bool) []application.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]application.Application, 0)
	for _, a := range r.s.apps {
		if !match(a) {
			continue
		}
		applicant := r.s.users[a.ApplicantID]
		a.ApplicantUsername = applicant.Username
		a.ApplicantEmail = applicant.Email
		a.PostingTitle = r.s.postings[a.PostingID].JobTitle
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
