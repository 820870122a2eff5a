package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookinggate/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager()

	u := m.Users(db)
	if u == nil {
		t.Fatal("Users() nil")
	}
	if _, ok := u.(*users.PostgresRepository); !ok {
		t.Fatalf("unexpected repository type %T", u)
	}
}

func TestMemoryManager_SharesStore(t *testing.T) {
	var m RepositoryManager = NewMemoryRepositoryManager()

	assert.Same(t, m.Users(nil), m.Users(nil))
	assert.NoError(t, m.RunMigrations(context.Background(), nil))
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func withMockOpen(t *testing.T, db *sql.DB) {
	t.Helper()
	origOpen, origBackoff := openDB, openBackoff
	openDB = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			return nil, errors.New("unexpected driver " + driver)
		}
		return db, nil
	}
	openBackoff = func() retry.Backoff {
		return retry.WithMaxRetries(2, retry.NewConstant(1))
	}
	t.Cleanup(func() { openDB, openBackoff = origOpen, origBackoff })
}

func TestOpen_RetriesPing(t *testing.T) {
	db, mock := newDB(t)
	withMockOpen(t, db)

	mock.ExpectPing().WillReturnError(errors.New("starting up"))
	mock.ExpectPing()

	got, err := Open(context.Background(), "postgres://x")
	require.NoError(t, err)
	assert.Same(t, db, got)
	assert.NoError(t, mock.ExpectationsWereMet())
	_ = got.Close()
}

func TestOpen_GivesUp(t *testing.T) {
	db, mock := newDB(t)
	withMockOpen(t, db)

	for i := 0; i < 3; i++ {
		mock.ExpectPing().WillReturnError(errors.New("down"))
	}
	mock.ExpectClose()

	_, err := Open(context.Background(), "postgres://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_OpenError(t *testing.T) {
	orig := openDB
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	defer func() { openDB = orig }()

	_, err := Open(context.Background(), "x")
	assert.ErrorContains(t, err, "bad dsn")
}
