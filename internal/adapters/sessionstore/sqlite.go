package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parts-matching-client/internal/platform/obs"
)

// SqliteStore is a SQLite-backed implementation of the SessionStore port.
type SqliteStore struct {
	DB *sql.DB
}

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{DB: db}
}

func (s *SqliteStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "session.sqlite.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("sqlite session store: DB is nil")
	}

	var v string
	err = s.DB.QueryRowContext(ctx, `SELECT value FROM client_session WHERE name = ?;`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session %q: query client_session: %w", key, err)
	}
	return v, true, nil
}

func (s *SqliteStore) Set(ctx context.Context, key, value string) error {
	if s.DB == nil {
		return errors.New("sqlite session store: DB is nil")
	}

	query := `
	INSERT INTO client_session (name, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (name) DO UPDATE
	SET value = excluded.value,
		updated_at = excluded.updated_at;
	`
	if _, err := s.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set session %q: %w", key, err)
	}
	return nil
}

func (s *SqliteStore) Delete(ctx context.Context, keys ...string) error {
	if s.DB == nil {
		return errors.New("sqlite session store: DB is nil")
	}
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete session: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `DELETE FROM client_session WHERE name = ?;`)
	if err != nil {
		return fmt.Errorf("delete session: prepare: %w", err)
	}
	defer stmt.Close()

	for _, k := range keys {
		if _, err := stmt.ExecContext(ctx, k); err != nil {
			return fmt.Errorf("delete session %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete session: commit tx: %w", err)
	}
	return nil
}
