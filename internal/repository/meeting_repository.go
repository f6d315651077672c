package repository

import (
	"context"
	"errors"

	"campus-jobs/internal/database"
	"campus-jobs/internal/domain/meeting"
)

const meetingSelect = `SELECT m.id, m.recruiter_id, m.applicant_id, m.meeting_time, m.posting_id,
	r.username, a.username, COALESCE(p.job_title, ''), m.created_at
	FROM meetings m
	JOIN users r ON r.id = m.recruiter_id
	JOIN users a ON a.id = m.applicant_id
	LEFT JOIN postings p ON p.posting_id = m.posting_id`

type PostgresMeetingRepository struct {
	db database.DB
}

func NewPostgresMeetingRepository(db database.DB) *PostgresMeetingRepository {
	return &PostgresMeetingRepository{db: db}
}

func (r *PostgresMeetingRepository) CreateForOwnedPosting(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	if m.PostingID == nil {
		return meeting.Meeting{}, meeting.ErrMissingPostingID
	}

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO meetings (recruiter_id, applicant_id, meeting_time, posting_id)
		 SELECT p.recruiter_id, $2, $3, p.posting_id
		 FROM postings p
		 WHERE p.posting_id = $4 AND p.recruiter_id = $1
		 RETURNING id`,
		m.RecruiterID, m.ApplicantID, m.MeetingTime, *m.PostingID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return meeting.Meeting{}, meeting.ErrPostingNotOwned
		}
		return meeting.Meeting{}, err
	}

	rows, err := r.db.Query(ctx, meetingSelect+` WHERE m.id = $1`, id)
	if err != nil {
		return meeting.Meeting{}, err
	}
	out, err := collectMeetings(rows)
	if err != nil {
		return meeting.Meeting{}, err
	}
	if len(out) == 0 {
		return meeting.Meeting{}, errors.New("meeting vanished after insert")
	}
	return out[0], nil
}

func (r *PostgresMeetingRepository) ListForRecruiter(ctx context.Context, recruiterID int64) ([]meeting.Meeting, error) {
	rows, err := r.db.Query(ctx, meetingSelect+` WHERE m.recruiter_id = $1 ORDER BY m.meeting_time ASC, m.id ASC`, recruiterID)
	if err != nil {
		return nil, err
	}
	return collectMeetings(rows)
}

func (r *PostgresMeetingRepository) ListForApplicant(ctx context.Context, applicantID int64) ([]meeting.Meeting, error) {
	rows, err := r.db.Query(ctx, meetingSelect+` WHERE m.applicant_id = $1 ORDER BY m.meeting_time ASC, m.id ASC`, applicantID)
	if err != nil {
		return nil, err
	}
	return collectMeetings(rows)
}

func collectMeetings(rows database.Rows) ([]meeting.Meeting, error) {
	defer rows.Close()

	out := make([]meeting.Meeting, 0)
	for rows.Next() {
		var m meeting.Meeting
		if err := rows.Scan(
			&m.ID, &m.RecruiterID, &m.ApplicantID, &m.MeetingTime, &m.PostingID,
			&m.RecruiterUsername, &m.ApplicantUsername, &m.PostingTitle, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
