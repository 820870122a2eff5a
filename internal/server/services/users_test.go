package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/server/auth"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_RequiresEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.CreateUser(context.Background(), models.NewUser{FirstName: "Hal"})
	assert.ErrorIs(t, err, common.ErrInvalidState)
	assert.Empty(t, f.dispatcher.sent)
}

func TestCreateUser_IgnoresPasswordAndKeepsRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.CreateUser(ctx, models.NewUser{Email: "admin2@x.com", FirstName: "Ada", Password: "ignored", Role: models.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, u.Role)

	s := f.stored(t, u.ID)
	assert.Nil(t, s.PasswordHash)
	assert.True(t, s.Verified(), "invited accounts skip the one-time code")
	assert.NotNil(t, s.SetPasswordToken)

	_, err = f.users.CreateUser(ctx, models.NewUser{Email: "admin2@x.com", FirstName: "Ada"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestToggleActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "a@x.com", "pw")

	got, err := f.users.ToggleActive(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, f.stored(t, u.ID).IsActive)

	got, err = f.users.ToggleActive(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	_, err = f.users.ToggleActive(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "a@x.com", "pw")
	require.NoError(t, f.auth.ForgetPassword(ctx, "a@x.com"))

	got, err := f.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Nil(t, got.PasswordHash)
	assert.Nil(t, got.PasswordResetToken)

	_, err = f.users.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserService_StoreError(t *testing.T) {
	f := newFixtureWith(t, failingRepo{err: errDBDown}, auth.NewCodec([]byte(testSecret), testTTLs))
	ctx := context.Background()

	_, err := f.users.Get(ctx, "u-1")
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = f.users.ToggleActive(ctx, "u-1")
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = f.users.CreateUser(ctx, models.NewUser{Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = f.users.ListUsers(ctx, models.UserFilter{})
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = f.users.UpdateProfile(ctx, "u-1", models.Profile{LastName: strPtr("Lee")})
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestEnsureSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.EnsureSuperAdmin(ctx, "root@x.com", "rootpass")
	require.NoError(t, err)
	assert.True(t, created)

	stored, err := f.repo.FindByEmail(ctx, "root@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, stored.Role)
	assert.True(t, stored.Verified())
	assert.True(t, stored.IsActive)

	token, err := f.auth.Login(ctx, "root@x.com", "rootpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	created, err = f.users.EnsureSuperAdmin(ctx, "root@x.com", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, f.dispatcher.sent)
}

func TestEnsureSuperAdmin_Errors(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.EnsureSuperAdmin(context.Background(), "", "pw")
	assert.ErrorIs(t, err, common.ErrInvalidState)

	f = newFixtureWith(t, failingRepo{err: errDBDown}, auth.NewCodec([]byte(testSecret), testTTLs))
	_, err = f.users.EnsureSuperAdmin(context.Background(), "root@x.com", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com", "pw")
	_, err := f.users.CreateUser(ctx, models.NewUser{Email: "host@x.com", FirstName: "Hal"})
	require.NoError(t, err)

	all, err := f.users.ListUsers(ctx, models.UserFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, u := range all {
		assert.Nil(t, u.PasswordHash)
		assert.Nil(t, u.SetPasswordToken)
	}

	vendors, err := f.users.ListUsers(ctx, models.UserFilter{Role: models.RoleVendor})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "host@x.com", vendors[0].Email)

	_, err = f.users.ListUsers(ctx, models.UserFilter{Role: "ROOT"})
	assert.ErrorIs(t, err, common.ErrInvalidState)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "a@x.com", "pw")

	got, err := f.users.UpdateProfile(ctx, u.ID, models.Profile{FirstName: strPtr("Anna"), PhoneNo: strPtr("+37120000000")})
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.FirstName)
	assert.Equal(t, "Lee", got.LastName)
	assert.Equal(t, "+37120000000", got.PhoneNo)
	assert.Nil(t, got.PasswordHash)

	s := f.stored(t, u.ID)
	assert.Equal(t, "Anna", s.FirstName)
	assert.NotNil(t, s.PasswordHash, "profile updates leave the password alone")

	_, err = f.users.UpdateProfile(ctx, u.ID, models.Profile{FirstName: strPtr("")})
	assert.ErrorIs(t, err, common.ErrInvalidState)

	_, err = f.users.UpdateProfile(ctx, "missing", models.Profile{LastName: strPtr("X")})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
