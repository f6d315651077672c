package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/experience"
	"campus-jobs/internal/domain/meeting"
	"campus-jobs/internal/domain/posting"
	"campus-jobs/internal/domain/review"
	"campus-jobs/internal/domain/tracker"
	"campus-jobs/internal/domain/user"
)

var (
	_ user.Repository        = (*UserRepository)(nil)
	_ review.Repository      = (*ReviewRepository)(nil)
	_ posting.Repository     = (*PostingRepository)(nil)
	_ application.Repository = (*ApplicationRepository)(nil)
	_ experience.Repository  = (*ExperienceRepository)(nil)
	_ meeting.Repository     = (*MeetingRepository)(nil)
	_ tracker.Repository     = (*TrackerRepository)(nil)
)

func seedUsers(t *testing.T, s *Store) (recruiter, applicant user.User) {
	t.Helper()
	ctx := context.Background()
	var err error
	recruiter, err = s.Users().Create(ctx, user.User{Username: "rita", Email: "rita@campus.edu", IsRecruiter: true})
	if err != nil {
		t.Fatalf("create recruiter: %v", err)
	}
	applicant, err = s.Users().Create(ctx, user.User{Username: "sam", Email: "sam@campus.edu"})
	if err != nil {
		t.Fatalf("create applicant: %v", err)
	}
	return recruiter, applicant
}

func TestUserUniqueness(t *testing.T) {
	s := New()
	seedUsers(t, s)
	ctx := context.Background()

	if _, err := s.Users().Create(ctx, user.User{Username: "rita", Email: "other@campus.edu"}); !errors.Is(err, user.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
	if _, err := s.Users().Create(ctx, user.User{Username: "other", Email: "sam@campus.edu"}); !errors.Is(err, user.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestVotesNeverGoNegative(t *testing.T) {
	s := New()
	_, author := seedUsers(t, s)
	ctx := context.Background()

	rv, err := s.Reviews().Create(ctx, review.Review{UserID: author.ID, JobTitle: "Barista", Review: "ok", Rating: 3})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if n, err := s.Reviews().Downvote(ctx, rv.ID); err != nil || n != 0 {
		t.Fatalf("downvote at zero: n=%d err=%v", n, err)
	}
	for i := 0; i < 3; i++ {
		_, _ = s.Reviews().Upvote(ctx, rv.ID)
	}
	var n int
	for i := 0; i < 5; i++ {
		n, _ = s.Reviews().Downvote(ctx, rv.ID)
	}
	if n != 0 {
		t.Fatalf("expected 0 upvotes, got %d", n)
	}
}

func TestPostingCascade(t *testing.T) {
	s := New()
	rec, app := seedUsers(t, s)
	ctx := context.Background()

	if _, err := s.Postings().Create(ctx, posting.Posting{ID: 1, RecruiterID: rec.ID, JobTitle: "Tutor"}); err != nil {
		t.Fatalf("create posting: %v", err)
	}
	if _, err := s.Applications().Apply(ctx, 1, rec.ID, app.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	pid := int64(1)
	m, err := s.Meetings().CreateForOwnedPosting(ctx, meeting.Meeting{
		RecruiterID: rec.ID,
		ApplicantID: app.ID,
		MeetingTime: time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC),
		PostingID:   &pid,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if err := s.Postings().DeleteWithApplications(ctx, 1, app.ID); !errors.Is(err, posting.ErrNotFound) {
		t.Fatalf("non-owner delete: expected ErrNotFound, got %v", err)
	}
	if apps, _ := s.Applications().ListForPosting(ctx, 1); len(apps) != 1 {
		t.Fatalf("non-owner delete must not touch applications")
	}

	if err := s.Postings().DeleteWithApplications(ctx, 1, rec.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if apps, _ := s.Applications().ListForPosting(ctx, 1); len(apps) != 0 {
		t.Fatalf("applications should be gone, got %d", len(apps))
	}
	ms, _ := s.Meetings().ListForRecruiter(ctx, rec.ID)
	if len(ms) != 1 || ms[0].ID != m.ID || ms[0].PostingID != nil {
		t.Fatalf("meeting should survive with no posting, got %+v", ms)
	}
}

func TestApplyAndShortlist(t *testing.T) {
	s := New()
	rec, app := seedUsers(t, s)
	ctx := context.Background()
	_, _ = s.Postings().Create(ctx, posting.Posting{ID: 5, RecruiterID: rec.ID, JobTitle: "Grader"})

	if res, _ := s.Applications().Apply(ctx, 5, rec.ID, app.ID); res != application.Created {
		t.Fatalf("first apply: %v", res)
	}
	if res, _ := s.Applications().Apply(ctx, 5, rec.ID, app.ID); res != application.AlreadyExists {
		t.Fatalf("second apply: %v", res)
	}

	on, err := s.Applications().ToggleShortlist(ctx, 5, rec.ID, app.ID)
	if err != nil || !on {
		t.Fatalf("first toggle: %v %v", on, err)
	}
	if list, _ := s.Applications().ListShortlisted(ctx, 5); len(list) != 1 {
		t.Fatalf("expected one shortlisted, got %d", len(list))
	}
	off, _ := s.Applications().ToggleShortlist(ctx, 5, rec.ID, app.ID)
	if off {
		t.Fatalf("second toggle should restore false")
	}
	if _, err := s.Applications().ToggleShortlist(ctx, 5, rec.ID, 999); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("toggle unknown applicant: %v", err)
	}
}

func TestMeetingRequiresOwnedPosting(t *testing.T) {
	s := New()
	rec, app := seedUsers(t, s)
	ctx := context.Background()
	_, _ = s.Postings().Create(ctx, posting.Posting{ID: 3, RecruiterID: rec.ID, JobTitle: "Tutor"})

	pid := int64(3)
	_, err := s.Meetings().CreateForOwnedPosting(ctx, meeting.Meeting{RecruiterID: app.ID, ApplicantID: rec.ID, PostingID: &pid})
	if !errors.Is(err, meeting.ErrPostingNotOwned) {
		t.Fatalf("expected ErrPostingNotOwned, got %v", err)
	}
	if s.Meetings().Count() != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestMeetingsDoNotShareStoredPostingID(t *testing.T) {
	s := New()
	rec, app := seedUsers(t, s)
	ctx := context.Background()
	_, _ = s.Postings().Create(ctx, posting.Posting{ID: 4, RecruiterID: rec.ID, JobTitle: "Tutor"})

	pid := int64(4)
	created, err := s.Meetings().CreateForOwnedPosting(ctx, meeting.Meeting{RecruiterID: rec.ID, ApplicantID: app.ID, PostingID: &pid})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	*created.PostingID = 77
	pid = 88

	listed, _ := s.Meetings().ListForApplicant(ctx, app.ID)
	if len(listed) != 1 || *listed[0].PostingID != 4 {
		t.Fatalf("stored posting id changed: %+v", listed)
	}
	*listed[0].PostingID = 99

	again, _ := s.Meetings().ListForRecruiter(ctx, rec.ID)
	if *again[0].PostingID != 4 || again[0].PostingTitle != "Tutor" {
		t.Fatalf("stored posting id changed through a listed copy: %+v", again[0])
	}
}
