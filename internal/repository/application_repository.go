package repository

import (
	"context"
	"errors"

	"campus-jobs/internal/database"
	"campus-jobs/internal/domain/application"
)

const applicationSelect = `SELECT a.id, a.posting_id, a.recruiter_id, a.applicant_id, u.username, u.email,
	p.job_title, a.shortlisted, a.applied_at
	FROM posting_applications a
	JOIN users u ON u.id = a.applicant_id
	JOIN postings p ON p.posting_id = a.posting_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Apply(ctx context.Context, postingID, recruiterID, applicantID int64) (application.ApplyResult, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO posting_applications (posting_id, recruiter_id, applicant_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT ON CONSTRAINT posting_applications_key DO NOTHING`,
		postingID, recruiterID, applicantID,
	)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return application.AlreadyExists, nil
	}
	return application.Created, nil
}

func (r *PostgresApplicationRepository) ListForPosting(ctx context.Context, postingID int64) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.posting_id = $1 ORDER BY a.id ASC`, postingID)
}

func (r *PostgresApplicationRepository) ToggleShortlist(ctx context.Context, postingID, recruiterID, applicantID int64) (bool, error) {
	var shortlisted bool
	err := r.db.QueryRow(ctx,
		`UPDATE posting_applications
		 SET shortlisted = NOT shortlisted
		 WHERE posting_id = $1 AND recruiter_id = $2 AND applicant_id = $3
		 RETURNING shortlisted`,
		postingID, recruiterID, applicantID,
	).Scan(&shortlisted)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return false, application.ErrNotFound
		}
		return false, err
	}
	return shortlisted, nil
}

func (r *PostgresApplicationRepository) ListShortlisted(ctx context.Context, postingID int64) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.posting_id = $1 AND a.shortlisted ORDER BY a.id ASC`, postingID)
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID int64) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.applicant_id = $1 ORDER BY a.applied_at DESC, a.id DESC`, applicantID)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, q string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(
			&a.ID, &a.PostingID, &a.RecruiterID, &a.ApplicantID, &a.ApplicantUsername, &a.ApplicantEmail,
			&a.PostingTitle, &a.Shortlisted, &a.AppliedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
