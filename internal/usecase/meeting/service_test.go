package meeting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"campus-jobs/internal/domain/meeting"
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
	}
	f.svc = NewService(store.Meetings(), store.Users(), f.rec, nil)

	for id, owner := range map[int64]int64{1: f.recruiter, 2: f.other} {
		if _, err := store.Postings().Create(ctx, posting.Posting{ID: id, RecruiterID: owner, JobTitle: "Grader"}); err != nil {
			t.Fatalf("create posting: %v", err)
		}
	}
	return f
}

func TestScheduleRejectionsPersistNothing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   ScheduleInput
		kind errs.Kind
		want error
	}{
		{"bad time", ScheduleInput{ApplicantUsername: "alice", MeetingTime: "invalid-date", PostingID: "1"}, errs.KindValidation, meeting.ErrInvalidTimeFormat},
		{"bad time wins over missing posting", ScheduleInput{ApplicantUsername: "nobody", MeetingTime: "tomorrow"}, errs.KindValidation, meeting.ErrInvalidTimeFormat},
		{"missing posting", ScheduleInput{ApplicantUsername: "alice", MeetingTime: "2030-01-02T10:00"}, errs.KindValidation, meeting.ErrMissingPostingID},
		{"non numeric posting", ScheduleInput{ApplicantUsername: "alice", MeetingTime: "2030-01-02T10:00", PostingID: "abc"}, errs.KindValidation, meeting.ErrInvalidPostingID},
		{"unknown applicant", ScheduleInput{ApplicantUsername: "nobody", MeetingTime: "2030-01-02T10:00", PostingID: "1"}, errs.KindNotFound, meeting.ErrApplicantNotFound},
		{"unowned posting", ScheduleInput{ApplicantUsername: "alice", MeetingTime: "2030-01-02T10:00", PostingID: "2"}, errs.KindNotFound, meeting.ErrPostingNotOwned},
		{"missing posting row", ScheduleInput{ApplicantUsername: "alice", MeetingTime: "2030-01-02T10:00", PostingID: "77"}, errs.KindNotFound, meeting.ErrPostingNotOwned},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Schedule(ctx, f.recruiter, tc.in)
			if !errs.Is(err, tc.kind) || !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %s/%v", err, tc.kind, tc.want)
			}
		})
	}

	if n := f.store.Meetings().Count(); n != 0 {
		t.Fatalf("expected no meetings stored, got %d", n)
	}
	if len(f.rec.Subjects()) != 0 {
		t.Fatalf("no events expected, got %v", f.rec.Subjects())
	}
}

func TestScheduleAndList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.svc.now = func() time.Time { return time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC) }

	later, err := f.svc.Schedule(ctx, f.recruiter, ScheduleInput{ApplicantUsername: "alice", MeetingTime: "2030-01-04T10:00", PostingID: "1"})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if later.PostingID == nil || *later.PostingID != 1 || later.ApplicantUsername != "alice" || later.PostingTitle != "Grader" {
		t.Fatalf("unexpected meeting: %+v", later)
	}
	if _, err := f.svc.Schedule(ctx, f.recruiter, ScheduleInput{ApplicantUsername: "alice", MeetingTime: "2030-01-02T09:00:00Z", PostingID: " 1 "}); err != nil {
		t.Fatalf("schedule rfc3339: %v", err)
	}

	ms, err := f.svc.ListForRecruiter(ctx, f.recruiter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ms) != 2 || !ms[0].MeetingTime.Before(ms[1].MeetingTime) {
		t.Fatalf("meetings not ordered by time: %+v", ms)
	}
	if !strings.HasSuffix(ms[1].When, "from now") {
		t.Fatalf("unexpected when: %q", ms[1].When)
	}

	mine, err := f.svc.ListForApplicant(ctx, f.alice)
	if err != nil || len(mine) != 2 {
		t.Fatalf("applicant list: %d err=%v", len(mine), err)
	}
	none, _ := f.svc.ListForRecruiter(ctx, f.other)
	if len(none) != 0 {
		t.Fatalf("other recruiter sees %d meetings", len(none))
	}
	if got := f.rec.Subjects(); len(got) != 2 || got[0] != events.SubjectMeetingScheduled {
		t.Fatalf("events = %v", got)
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2030-05-06T07:08")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := time.Date(2030, 5, 6, 7, 8, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if _, err := ParseTime("06/05/2030"); !errors.Is(err, meeting.ErrInvalidTimeFormat) {
		t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
	}
}
