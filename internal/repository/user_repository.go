package repository

import (
	"context"
	"errors"

	"campus-jobs/internal/database"
	"campus-jobs/internal/database/postgres"
	"campus-jobs/internal/domain/user"
)

const userColumns = `id, username, email, password_hash, image_file, is_recruiter, created_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ImageFile == "" {
		u.ImageFile = user.DefaultImageFile
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, image_file, is_recruiter)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		u.Username, u.Email, u.PasswordHash, u.ImageFile, u.IsRecruiter,
	)
	created, err := scanUser(row)
	if err != nil {
		if constraint, ok := postgres.UniqueViolation(err); ok {
			if constraint == "users_username_key" {
				return user.User{}, user.ErrDuplicateUsername
			}
			return user.User{}, user.ErrDuplicateEmail
		}
		return user.User{}, err
	}
	return created, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.ImageFile, &u.IsRecruiter, &u.CreatedAt); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
