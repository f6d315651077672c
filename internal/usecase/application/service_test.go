package application

import (
	"context"
	"errors"
	"testing"

	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/posting"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/events"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/repository/memory"
)

type fixture struct {
	store     *memory.Store
	svc       *Service
	rec       *events.Recorder
	recruiter int64
	other     int64
	alice     int64
	bob       int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	mk := func(name string, recruiter bool) int64 {
		u, err := store.Users().Create(ctx, user.User{Username: name, Email: name + "@example.com", IsRecruiter: recruiter})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		return u.ID
	}
	f := fixture{
		store:     store,
		rec:       &events.Recorder{},
		recruiter: mk("rita", true),
		other:     mk("oscar", true),
		alice:     mk("alice", false),
		bob:       mk("bob", false),
	}
	f.svc = NewService(store.Applications(), store.Postings(), store.Users(), f.rec, nil)
	return f
}

func (f fixture) posting(t *testing.T, id, recruiter int64) {
	t.Helper()
	_, err := f.store.Postings().Create(context.Background(), posting.Posting{ID: id, RecruiterID: recruiter, JobTitle: "Job"})
	if err != nil {
		t.Fatalf("create posting: %v", err)
	}
}

func TestApplyShortlistScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.posting(t, 1, f.recruiter)

	res, err := f.svc.Apply(ctx, ApplyInput{PostingID: 1, RecruiterID: f.recruiter, ApplicantID: f.alice})
	if err != nil || res != application.Created {
		t.Fatalf("first apply: %v %v", res, err)
	}
	res, err = f.svc.Apply(ctx, ApplyInput{PostingID: 1, RecruiterID: f.recruiter, ApplicantID: f.alice})
	if err != nil || res != application.AlreadyExists {
		t.Fatalf("second apply: %v %v", res, err)
	}

	apps, err := f.svc.ListForPosting(ctx, 1, f.recruiter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 1 || apps[0].Shortlisted || apps[0].ApplicantUsername != "alice" {
		t.Fatalf("unexpected applications: %+v", apps)
	}

	on, err := f.svc.ToggleShortlist(ctx, 1, f.recruiter, f.alice)
	if err != nil || !on {
		t.Fatalf("toggle: %v %v", on, err)
	}
	apps, _ = f.svc.ListForPosting(ctx, 1, f.recruiter)
	if !apps[0].Shortlisted {
		t.Fatalf("expected shortlisted after toggle")
	}

	subjects := f.rec.Subjects()
	want := []string{events.SubjectApplicationCreated, events.SubjectShortlistToggled}
	if len(subjects) != len(want) || subjects[0] != want[0] || subjects[1] != want[1] {
		t.Fatalf("events = %v, want %v", subjects, want)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.posting(t, 1, f.recruiter)

	if _, err := f.svc.Apply(ctx, ApplyInput{PostingID: 1, ApplicantID: f.alice}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	first, _ := f.svc.ToggleShortlist(ctx, 1, f.recruiter, f.alice)
	second, err := f.svc.ToggleShortlist(ctx, 1, f.recruiter, f.alice)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !first || second {
		t.Fatalf("toggle sequence = %v, %v", first, second)
	}
}

func TestToggleMissingApplication(t *testing.T) {
	f := setup(t)
	f.posting(t, 1, f.recruiter)

	_, err := f.svc.ToggleShortlist(context.Background(), 1, f.recruiter, f.bob)
	if !errs.Is(err, errs.KindNotFound) || !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApplyValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.posting(t, 1, f.recruiter)

	if _, err := f.svc.Apply(ctx, ApplyInput{PostingID: 9, ApplicantID: f.alice}); !errs.Is(err, errs.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err := f.svc.Apply(ctx, ApplyInput{PostingID: 1, RecruiterID: f.other, ApplicantID: f.alice})
	if !errs.Is(err, errs.KindValidation) || !errors.Is(err, ErrRecruiterMismatch) {
		t.Fatalf("expected recruiter mismatch, got %v", err)
	}
}

func TestListForPostingOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.posting(t, 1, f.recruiter)

	if _, err := f.svc.ListForPosting(ctx, 1, f.other); !errs.Is(err, errs.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := f.svc.ListForPosting(ctx, 2, f.recruiter); !errs.Is(err, errs.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListShortlistedAggregate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.posting(t, 2, f.recruiter)
	f.posting(t, 1, f.recruiter)
	f.posting(t, 3, f.other)

	for _, in := range []ApplyInput{
		{PostingID: 1, ApplicantID: f.alice},
		{PostingID: 1, ApplicantID: f.bob},
		{PostingID: 3, ApplicantID: f.alice},
	} {
		if _, err := f.svc.Apply(ctx, in); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	if _, err := f.svc.ToggleShortlist(ctx, 1, f.recruiter, f.bob); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	groups, err := f.svc.ListShortlisted(ctx, f.recruiter, nil)
	if err != nil {
		t.Fatalf("list shortlisted: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Posting.ID != 1 || len(groups[0].Applicants) != 1 || groups[0].Applicants[0].ApplicantUsername != "bob" {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Posting.ID != 2 || len(groups[1].Applicants) != 0 {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}

	if _, err := f.svc.ListShortlisted(ctx, f.alice, nil); !errs.Is(err, errs.KindForbidden) {
		t.Fatalf("expected forbidden for non-recruiter, got %v", err)
	}
}

func TestListShortlistedForPosting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.posting(t, 1, f.recruiter)

	one := int64(1)
	groups, err := f.svc.ListShortlisted(ctx, f.recruiter, &one)
	if err != nil || len(groups) != 1 || groups[0].Posting.ID != 1 {
		t.Fatalf("unexpected: %+v err=%v", groups, err)
	}
	if _, err := f.svc.ListShortlisted(ctx, f.other, &one); !errs.Is(err, errs.KindNotFound) {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}
}

func TestListMine(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.posting(t, 1, f.recruiter)
	f.posting(t, 2, f.other)

	for _, id := range []int64{1, 2} {
		if _, err := f.svc.Apply(ctx, ApplyInput{PostingID: id, ApplicantID: f.alice}); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	mine, err := f.svc.ListMine(ctx, f.alice)
	if err != nil || len(mine) != 2 {
		t.Fatalf("list mine: %d err=%v", len(mine), err)
	}
	none, _ := f.svc.ListMine(ctx, f.bob)
	if len(none) != 0 {
		t.Fatalf("expected no applications for bob")
	}
}
