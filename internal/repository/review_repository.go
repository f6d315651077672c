package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campus-jobs/internal/database"
	"campus-jobs/internal/domain/review"
)

const reviewSelect = `SELECT r.id, r.user_id, u.username, r.department, r.locations, r.job_title,
	r.job_description, r.hourly_pay, r.benefits, r.review, r.rating, r.recommendation,
	r.upvotes, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

type PostgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) Create(ctx context.Context, rv review.Review) (review.Review, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO reviews (user_id, department, locations, job_title, job_description,
			hourly_pay, benefits, review, rating, recommendation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		rv.UserID, rv.Department, rv.Locations, rv.JobTitle, rv.JobDescription,
		rv.HourlyPay, rv.Benefits, rv.Review, rv.Rating, rv.Recommendation,
	).Scan(&id)
	if err != nil {
		return review.Review{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresReviewRepository) GetByID(ctx context.Context, id int64) (review.Review, error) {
	return scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
}

func (r *PostgresReviewRepository) Update(ctx context.Context, rv review.Review) (review.Review, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE reviews
		 SET department = $3, locations = $4, job_title = $5, job_description = $6,
			hourly_pay = $7, benefits = $8, review = $9, rating = $10, recommendation = $11
		 WHERE id = $1 AND user_id = $2`,
		rv.ID, rv.UserID, rv.Department, rv.Locations, rv.JobTitle, rv.JobDescription,
		rv.HourlyPay, rv.Benefits, rv.Review, rv.Rating, rv.Recommendation,
	)
	if err != nil {
		return review.Review{}, err
	}
	if n == 0 {
		return review.Review{}, review.ErrNotFound
	}
	return r.GetByID(ctx, rv.ID)
}

func (r *PostgresReviewRepository) Delete(ctx context.Context, id, userID int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return review.ErrNotFound
	}
	return nil
}

func (r *PostgresReviewRepository) Upvote(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`UPDATE reviews SET upvotes = upvotes + 1 WHERE id = $1 RETURNING upvotes`, id,
	).Scan(&count)
	if errors.Is(err, database.ErrNoRows) {
		return 0, review.ErrNotFound
	}
	return count, err
}

func (r *PostgresReviewRepository) Downvote(ctx context.Context, id int64) (int, error) {
	// GREATEST keeps the row in the RETURNING set when the count is
	// already zero, so a floor hit still reads back the current value.
	var count int
	err := r.db.QueryRow(ctx,
		`UPDATE reviews SET upvotes = GREATEST(upvotes - 1, 0) WHERE id = $1 RETURNING upvotes`, id,
	).Scan(&count)
	if errors.Is(err, database.ErrNoRows) {
		return 0, review.ErrNotFound
	}
	return count, err
}

func (r *PostgresReviewRepository) Search(ctx context.Context, f review.Filter, limit, offset int) ([]review.Review, int, error) {
	where, args := reviewWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews r`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	q := fmt.Sprintf(`%s%s ORDER BY r.id ASC LIMIT $%d OFFSET $%d`, reviewSelect, where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]review.Review, 0, limit)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func reviewWhere(f review.Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if s := strings.TrimSpace(f.Title); s != "" {
		add("r.job_title ILIKE $%d", "%"+escapeLike(s)+"%")
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		add("r.locations ILIKE $%d", "%"+escapeLike(s)+"%")
	}
	if f.MinRating != nil {
		add("r.rating >= $%d", *f.MinRating)
	}
	if f.MaxRating != nil {
		add("r.rating <= $%d", *f.MaxRating)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanReview(row database.Row) (review.Review, error) {
	var rv review.Review
	err := row.Scan(
		&rv.ID, &rv.UserID, &rv.AuthorUsername, &rv.Department, &rv.Locations, &rv.JobTitle,
		&rv.JobDescription, &rv.HourlyPay, &rv.Benefits, &rv.Review, &rv.Rating, &rv.Recommendation,
		&rv.Upvotes, &rv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return review.Review{}, review.ErrNotFound
		}
		return review.Review{}, err
	}
	return rv, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
