package repository

import (
	"context"
	"strings"

	"campus-jobs/internal/database"
	"campus-jobs/internal/domain/experience"
)

const experienceColumns = `e.id, e.username, e.job_title, e.company_name, e.location, e.duration,
	e.description, e.skills, e.created_at`

type PostgresExperienceRepository struct {
	db database.DB
}

func NewPostgresExperienceRepository(db database.DB) *PostgresExperienceRepository {
	return &PostgresExperienceRepository{db: db}
}

func (r *PostgresExperienceRepository) Create(ctx context.Context, e experience.Experience) (experience.Experience, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_experiences AS e (username, job_title, company_name, location, duration, description, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+experienceColumns,
		e.Username, e.JobTitle, e.CompanyName, e.Location, e.Duration, e.Description, e.Skills,
	)
	return scanExperience(row)
}

func (r *PostgresExperienceRepository) ListByUsername(ctx context.Context, username string) ([]experience.Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+experienceColumns+`
		 FROM job_experiences e
		 WHERE e.username = $1
		 ORDER BY e.id ASC`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]experience.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
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

func (r *PostgresExperienceRepository) SearchCandidates(ctx context.Context, t experience.SearchType, query string) ([]experience.Candidate, error) {
	q := `SELECT ` + experienceColumns + `, u.id, u.email, u.image_file
		 FROM job_experiences e
		 JOIN users u ON u.username = e.username
		 WHERE NOT u.is_recruiter`
	var args []any

	if query = strings.TrimSpace(query); query != "" {
		args = append(args, "%"+escapeLike(query)+"%")
		switch t {
		case experience.SearchBySkills:
			q += ` AND e.skills ILIKE $1`
		default:
			q += ` AND e.job_title ILIKE $1`
		}
	}
	q += ` ORDER BY e.id ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]experience.Candidate, 0)
	for rows.Next() {
		var c experience.Candidate
		e := &c.Experience
		if err := rows.Scan(
			&e.ID, &e.Username, &e.JobTitle, &e.CompanyName, &e.Location, &e.Duration,
			&e.Description, &e.Skills, &e.CreatedAt,
			&c.UserID, &c.Email, &c.ImageFile,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanExperience(row database.Row) (experience.Experience, error) {
	var e experience.Experience
	err := row.Scan(&e.ID, &e.Username, &e.JobTitle, &e.CompanyName, &e.Location, &e.Duration,
		&e.Description, &e.Skills, &e.CreatedAt)
	return e, err
}
