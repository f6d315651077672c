package repository

import (
	"context"
	"errors"

	"campus-jobs/internal/database"
	"campus-jobs/internal/database/postgres"
	"campus-jobs/internal/domain/posting"
)

const postingSelect = `SELECT p.posting_id, p.recruiter_id, u.username, p.job_title, p.job_description,
	p.job_link, p.job_location, p.job_pay_rate, p.max_hours_allowed, p.created_at
	FROM postings p
	JOIN users u ON u.id = p.recruiter_id`

type PostgresPostingRepository struct {
	db database.DB
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

func (r *PostgresPostingRepository) Create(ctx context.Context, p posting.Posting) (posting.Posting, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO postings (posting_id, recruiter_id, job_title, job_description, job_link,
			job_location, job_pay_rate, max_hours_allowed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.RecruiterID, p.JobTitle, p.JobDescription, p.JobLink,
		p.JobLocation, p.JobPayRate, p.MaxHoursAllowed,
	)
	if err != nil {
		if _, ok := postgres.UniqueViolation(err); ok {
			return posting.Posting{}, posting.ErrDuplicateID
		}
		return posting.Posting{}, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *PostgresPostingRepository) GetByID(ctx context.Context, id int64) (posting.Posting, error) {
	return scanPosting(r.db.QueryRow(ctx, postingSelect+` WHERE p.posting_id = $1`, id))
}

func (r *PostgresPostingRepository) List(ctx context.Context) ([]posting.Posting, error) {
	return r.list(ctx, postingSelect+` ORDER BY p.posting_id ASC`)
}

func (r *PostgresPostingRepository) ListByRecruiter(ctx context.Context, recruiterID int64) ([]posting.Posting, error) {
	return r.list(ctx, postingSelect+` WHERE p.recruiter_id = $1 ORDER BY p.posting_id ASC`, recruiterID)
}

func (r *PostgresPostingRepository) Latest(ctx context.Context, limit int) ([]posting.Posting, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.list(ctx, postingSelect+` ORDER BY p.created_at DESC, p.posting_id DESC LIMIT $1`, limit)
}

func (r *PostgresPostingRepository) DeleteWithApplications(ctx context.Context, id, recruiterID int64) error {
	return database.WithTx(ctx, r.db, func(q database.Querier) error {
		if _, err := q.Exec(ctx, `DELETE FROM posting_applications WHERE posting_id = $1`, id); err != nil {
			return err
		}
		n, err := q.Exec(ctx, `DELETE FROM postings WHERE posting_id = $1 AND recruiter_id = $2`, id, recruiterID)
		if err != nil {
			return err
		}
		if n == 0 {
			return posting.ErrNotFound
		}
		return nil
	})
}

func (r *PostgresPostingRepository) list(ctx context.Context, q string, args ...any) ([]posting.Posting, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPosting(row database.Row) (posting.Posting, error) {
	var p posting.Posting
	err := row.Scan(
		&p.ID, &p.RecruiterID, &p.RecruiterUsername, &p.JobTitle, &p.JobDescription,
		&p.JobLink, &p.JobLocation, &p.JobPayRate, &p.MaxHoursAllowed, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return posting.Posting{}, posting.ErrNotFound
		}
		return posting.Posting{}, err
	}
	return p, nil
}
