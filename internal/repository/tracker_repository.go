package repository

import (
	"context"
	"errors"
	"time"

	"campus-jobs/internal/database"
	"campus-jobs/internal/domain/tracker"
)

const trackerColumns = `id, user_id, job_link, applied_on, last_update_on, status, created_at`

type PostgresTrackerRepository struct {
	db database.DB
}

func NewPostgresTrackerRepository(db database.DB) *PostgresTrackerRepository {
	return &PostgresTrackerRepository{db: db}
}

func (r *PostgresTrackerRepository) Create(ctx context.Context, e tracker.Entry) (tracker.Entry, error) {
	return scanEntry(r.db.QueryRow(ctx,
		`INSERT INTO job_applications (user_id, job_link, applied_on, last_update_on, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+trackerColumns,
		e.UserID, e.JobLink, e.AppliedOn, e.LastUpdateOn, e.Status,
	))
}

func (r *PostgresTrackerRepository) GetByID(ctx context.Context, id int64) (tracker.Entry, error) {
	return scanEntry(r.db.QueryRow(ctx, `SELECT `+trackerColumns+` FROM job_applications WHERE id = $1`, id))
}

func (r *PostgresTrackerRepository) ListByUser(ctx context.Context, userID int64) ([]tracker.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+trackerColumns+` FROM job_applications WHERE user_id = $1 ORDER BY applied_on DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tracker.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTrackerRepository) UpdateStatus(ctx context.Context, id int64, status string) (tracker.Entry, error) {
	return scanEntry(r.db.QueryRow(ctx,
		`UPDATE job_applications SET status = $2 WHERE id = $1 RETURNING `+trackerColumns,
		id, status,
	))
}

func (r *PostgresTrackerRepository) UpdateLastUpdate(ctx context.Context, id int64, on time.Time) (tracker.Entry, error) {
	return scanEntry(r.db.QueryRow(ctx,
		`UPDATE job_applications SET last_update_on = $2 WHERE id = $1 RETURNING `+trackerColumns,
		id, on,
	))
}

func (r *PostgresTrackerRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return tracker.ErrNotFound
	}
	return nil
}

func scanEntry(row database.Row) (tracker.Entry, error) {
	var e tracker.Entry
	if err := row.Scan(&e.ID, &e.UserID, &e.JobLink, &e.AppliedOn, &e.LastUpdateOn, &e.Status, &e.CreatedAt); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return tracker.Entry{}, tracker.ErrNotFound
		}
		return tracker.Entry{}, err
	}
	return e, nil
}
