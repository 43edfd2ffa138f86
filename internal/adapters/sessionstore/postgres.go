package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parts-matching-client/internal/platform/obs"
)

// SQLStore is a Postgres-backed SessionStore (pgx stdlib driver). It lets a
// fleet of dashboards share one signed-in service account.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "session.sql.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("sql session store: db is nil")
	}

	var v string
	err = s.DB.QueryRowContext(ctx, `SELECT value FROM client_session WHERE name = $1;`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session %q: query client_session: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if s.DB == nil {
		return errors.New("sql session store: db is nil")
	}

	query := `
	INSERT INTO client_session (name, value, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (name) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at;
	`
	if _, err := s.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set session %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, keys ...string) error {
	if s.DB == nil {
		return errors.New("sql session store: db is nil")
	}
	if len(keys) == 0 {
		return nil
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM client_session WHERE name = ANY($1::text[]);`, keys); err != nil {
		return fmt.Errorf("delete session keys: %w", err)
	}
	return nil
}
