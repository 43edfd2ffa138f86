package sessionstore

import (
	"context"
	"database/sql/driver"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parts-matching-client/internal/config"
	"parts-matching-client/internal/ports"
)

// exerciseStore runs the behavior every SessionStore must share.
func exerciseStore(t *testing.T, s ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok, "empty store should report missing key")

	require.NoError(t, s.Set(ctx, "auth_token", "tok-1"))
	require.NoError(t, s.Set(ctx, "auth_user", `{"id":1}`))
	require.NoError(t, s.Set(ctx, "auth_token", "tok-2"))

	v, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-2", v)

	require.NoError(t, s.Delete(ctx, "auth_token", "auth_user", "never_set"))

	for _, k := range []string{"auth_token", "auth_user"} {
		_, ok, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, "%s should be deleted", k)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseStore(t, NewFileStore(path))
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, NewFileStore(path).Set(ctx, "auth_token", "tok"))

	v, ok, err := NewFileStore(path).Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStore(path)

	_, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok, "a corrupt file reads as an empty session")

	require.NoError(t, s.Delete(ctx, "auth_token", "auth_user"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	_, ok, err = s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	require.NoError(t, s.Set(ctx, "auth_token", "tok"))
	v, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestSqliteStoreViaOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s, closeFn, err := Open(context.Background(), config.SessionConfig{Backend: "sqlite", Path: path})
	require.NoError(t, err)
	defer closeFn()

	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	exerciseStore(t, NewRedisStore(rdb, 0))
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s := NewRedisStore(rdb, time.Hour)
	require.NoError(t, s.Set(context.Background(), "auth_token", "tok"))

	mr.FastForward(2 * time.Hour)

	_, ok, err := s.Get(context.Background(), "auth_token")
	require.NoError(t, err)
	assert.False(t, ok, "token should expire with the ttl")
}

type passthroughConverter struct{}

func (passthroughConverter) ConvertValue(v any) (driver.Value, error) { return v, nil }

func TestSQLStoreQueries(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passthroughConverter{}))
	require.NoError(t, err)
	defer conn.Close()

	s := NewSQLStore(conn)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value FROM client_session WHERE name = \$1`).
		WithArgs("auth_token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("tok"))

	v, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	mock.ExpectQuery(`SELECT value FROM client_session`).
		WithArgs("auth_user").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err = s.Get(ctx, "auth_user")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectExec(`INSERT INTO client_session`).
		WithArgs("auth_token", "tok-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Set(ctx, "auth_token", "tok-2"))

	mock.ExpectExec(`DELETE FROM client_session WHERE name = ANY`).
		WithArgs([]string{"auth_token", "auth_user"}).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, s.Delete(ctx, "auth_token", "auth_user"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), config.SessionConfig{Backend: "cookie"})
	assert.Error(t, err)
}
