package meeting

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"campus-jobs/internal/domain/meeting"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/events"
	"campus-jobs/internal/pkg/errs"
)

type ScheduleInput struct {
	ApplicantUsername string
	MeetingTime       string
	// PostingID is kept as submitted so a missing value and a non-numeric
	// one can be told apart.
	PostingID string
}

// Listed is a meeting with a human readable distance to its start.
type Listed struct {
	meeting.Meeting
	When string
}

type Service struct {
	meetings meeting.Repository
	users    user.Repository
	events   events.Publisher
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(meetings meeting.Repository, users user.Repository, pub events.Publisher, logger *zap.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{meetings: meetings, users: users, events: pub, logger: logger, now: time.Now}
}

// Schedule validates in a fixed order and writes nothing until the final
// insert, which also enforces posting ownership.
func (s *Service) Schedule(ctx context.Context, recruiterID int64, in ScheduleInput) (meeting.Meeting, error) {
	at, err := ParseTime(in.MeetingTime)
	if err != nil {
		return meeting.Meeting{}, errs.Validation("invalid meeting time format", meeting.ErrInvalidTimeFormat)
	}

	rawPosting := strings.TrimSpace(in.PostingID)
	if rawPosting == "" {
		return meeting.Meeting{}, errs.Validation("posting id is required", meeting.ErrMissingPostingID)
	}
	postingID, err := strconv.ParseInt(rawPosting, 10, 64)
	if err != nil {
		return meeting.Meeting{}, errs.Validation("posting id must be numeric", meeting.ErrInvalidPostingID)
	}

	applicant, err := s.users.GetByUsername(ctx, strings.TrimSpace(in.ApplicantUsername))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return meeting.Meeting{}, errs.NotFound("applicant not found", meeting.ErrApplicantNotFound)
		}
		return meeting.Meeting{}, errs.Internal("failed to load applicant", err)
	}

	created, err := s.meetings.CreateForOwnedPosting(ctx, meeting.Meeting{
		RecruiterID: recruiterID,
		ApplicantID: applicant.ID,
		MeetingTime: at,
		PostingID:   &postingID,
	})
	if err != nil {
		if errors.Is(err, meeting.ErrPostingNotOwned) {
			return meeting.Meeting{}, errs.NotFound("posting not found or not owned by recruiter", err)
		}
		return meeting.Meeting{}, errs.Internal("failed to schedule meeting", err)
	}

	events.Emit(ctx, s.events, s.logger, events.SubjectMeetingScheduled, events.MeetingEvent{
		MeetingID:   created.ID,
		PostingID:   postingID,
		RecruiterID: recruiterID,
		ApplicantID: applicant.ID,
		MeetingTime: created.MeetingTime,
	})
	return created, nil
}

func (s *Service) ListForRecruiter(ctx context.Context, recruiterID int64) ([]Listed, error) {
	ms, err := s.meetings.ListForRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, errs.Internal("failed to list meetings", err)
	}
	return s.listed(ms), nil
}

func (s *Service) ListForApplicant(ctx context.Context, applicantID int64) ([]Listed, error) {
	ms, err := s.meetings.ListForApplicant(ctx, applicantID)
	if err != nil {
		return nil, errs.Internal("failed to list meetings", err)
	}
	return s.listed(ms), nil
}

func (s *Service) listed(ms []meeting.Meeting) []Listed {
	now := s.now()
	out := make([]Listed, 0, len(ms))
	for _, m := range ms {
		out = append(out, Listed{Meeting: m, When: humanize.RelTime(m.MeetingTime, now, "ago", "from now")})
	}
	return out
}

// ParseTime accepts the datetime-local layout and RFC 3339. Times without a
// zone are taken as UTC.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(meeting.TimeLayout, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, meeting.ErrInvalidTimeFormat
	}
	return t.UTC(), nil
}
