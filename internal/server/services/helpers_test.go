package services

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookinggate/internal/dbx"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/dmitrijs2005/bookinggate/internal/server/auth"
	"github.com/dmitrijs2005/bookinggate/internal/server/metrics"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/dmitrijs2005/bookinggate/internal/server/notifications"
	"github.com/dmitrijs2005/bookinggate/internal/server/password"
	"github.com/dmitrijs2005/bookinggate/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var testTTLs = auth.TTLs{Identity: time.Hour, PasswordReset: time.Hour, PasswordSet: time.Hour}

// --- fakes ---

type sentNotification struct {
	recipientID string
	payload     notifications.Payload
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (d *fakeDispatcher) Enqueue(_ context.Context, recipientID string, p notifications.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentNotification{recipientID, p})
	return d.err
}

func (d *fakeDispatcher) last(t *testing.T) sentNotification {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.sent, "no notification sent")
	return d.sent[len(d.sent)-1]
}

// countingRepo wraps a real repository and counts writes.
type countingRepo struct {
	users.Repository
	updates int
}

func (r *countingRepo) Update(ctx context.Context, id string, f models.Fields) error {
	r.updates++
	return r.Repository.Update(ctx, id, f)
}

// failingRepo fails every call the way a broken database would.
type failingRepo struct{ err error }

func (r failingRepo) Create(context.Context, *models.User) (*models.User, error) { return nil, r.err }
func (r failingRepo) FindByEmail(context.Context, string) (*models.User, error)  { return nil, r.err }
func (r failingRepo) FindByID(context.Context, string) (*models.User, error)     { return nil, r.err }
func (r failingRepo) FindByResetToken(context.Context, string) (*models.User, error) {
	return nil, r.err
}
func (r failingRepo) FindBySetToken(context.Context, string) (*models.User, error) { return nil, r.err }
func (r failingRepo) List(context.Context, models.UserFilter) ([]*models.User, error) {
	return nil, r.err
}
func (r failingRepo) Update(context.Context, string, models.Fields) error { return r.err }

type fakeRepoManager struct {
	repo users.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.repo }

// --- fixture ---

type fixture struct {
	repo       *countingRepo
	codec      *auth.Codec
	dispatcher *fakeDispatcher
	metrics    *metrics.Metrics
	auth       *AuthService
	users      *UserService
}

func cheapHasher() *password.Hasher {
	return password.NewHasher(password.Params{Time: 1, Memory: 64, Threads: 1, SaltLen: 8, KeyLen: 16})
}

func newFixtureWith(t *testing.T, repo users.Repository, codec *auth.Codec) *fixture {
	t.Helper()
	f := &fixture{
		repo:       &countingRepo{Repository: repo},
		codec:      codec,
		dispatcher: &fakeDispatcher{},
		metrics:    metrics.New(),
	}
	d := Deps{
		Repos:           &fakeRepoManager{repo: f.repo},
		Codec:           codec,
		Hasher:          cheapHasher(),
		Dispatcher:      f.dispatcher,
		Metrics:         f.metrics,
		Logger:          logging.Nop{},
		FrontendBaseURL: "https://app.example.com",
	}
	creator := NewUserCreator(d)
	f.auth = NewAuthService(d, creator)
	f.users = NewUserService(d, creator, f.auth)
	return f
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, users.NewMemoryRepository(), auth.NewCodec([]byte(testSecret), testTTLs))
}

// register creates a verified active user with a password.
func (f *fixture) register(t *testing.T, email, pw string) *models.User {
	t.Helper()
	ctx := context.Background()
	u, err := f.auth.Register(ctx, models.NewUser{Email: email, FirstName: "Ann", LastName: "Lee", Password: pw})
	require.NoError(t, err)
	f.verify(t, u.ID)
	return u
}

func (f *fixture) stored(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := f.repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *fixture) verify(t *testing.T, id string) {
	t.Helper()
	u := f.stored(t, id)
	require.NotNil(t, u.Otp)
	_, err := f.auth.VerifyOtp(context.Background(), id, *u.Otp)
	require.NoError(t, err)
}

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	tok := u.Query().Get("token")
	require.NotEmpty(t, tok)
	return tok
}

var errDBDown = errors.New("db down")

func strPtr(s string) *string { return &s }
