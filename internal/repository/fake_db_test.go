package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"campus-jobs/internal/database"
)

// fakeDB answers Exec by matching a fragment of the statement and records
// what ran and how each transaction ended.
type fakeDB struct {
	execRows map[string]int64
	execErr  map[string]error
	row      func(query string) database.Row

	statements []string
	began      int
	committed  int
	rolledBack int
}

func newFakeDB() *fakeDB {
	return &fakeDB{execRows: map[string]int64{}, execErr: map[string]error{}}
}

func (f *fakeDB) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	f.statements = append(f.statements, query)
	for frag, err := range f.execErr {
		if strings.Contains(query, frag) {
			return 0, err
		}
	}
	for frag, n := range f.execRows {
		if strings.Contains(query, frag) {
			return n, nil
		}
	}
	return 0, nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(_ context.Context, query string, _ ...any) database.Row {
	f.statements = append(f.statements, query)
	if f.row != nil {
		return f.row(query)
	}
	return errRow{database.ErrNoRows}
}

func (f *fakeDB) Ping(context.Context) error { return nil }

func (f *fakeDB) Close() error { return nil }

func (f *fakeDB) SQLDB() *sql.DB { return nil }

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	f.began++
	return &fakeTx{db: f}, nil
}

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t *fakeTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.committed++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.db.rolledBack++
	return nil
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
