package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Valid())
	assert.True(t, RoleVendor.Valid())
	assert.True(t, RoleDefaultUser.Valid())
	assert.False(t, Role("ROOT").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_Redacted(t *testing.T) {
	u := &User{
		ID:                 "u1",
		Email:              "a@x.com",
		PasswordHash:       strPtr("hash"),
		Otp:                strPtr("1234"),
		PasswordResetToken: strPtr("r"),
		SetPasswordToken:   strPtr("s"),
		IsActive:           true,
		Role:               RoleVendor,
	}

	r := u.Redacted()

	assert.Nil(t, r.PasswordHash)
	assert.Nil(t, r.Otp)
	assert.Nil(t, r.PasswordResetToken)
	assert.Nil(t, r.SetPasswordToken)
	assert.Equal(t, "a@x.com", r.Email)
	assert.Equal(t, RoleVendor, r.Role)
	require.NotNil(t, u.PasswordHash, "original must stay intact")
}

func TestFields_ApplyAndEmpty(t *testing.T) {
	assert.True(t, Fields{}.Empty())

	active := false
	f := Fields{
		PasswordHash:       strPtr("new"),
		IsActive:           &active,
		ClearOtp:           true,
		PasswordResetToken: strPtr("t1"),
	}
	assert.False(t, f.Empty())

	u := &User{IsActive: true, Otp: strPtr("1234"), SetPasswordToken: strPtr("keep")}
	f.Apply(u)

	assert.Equal(t, "new", *u.PasswordHash)
	assert.False(t, u.IsActive)
	assert.True(t, u.Verified())
	assert.Equal(t, "t1", *u.PasswordResetToken)
	assert.Equal(t, "keep", *u.SetPasswordToken)

	*f.PasswordHash = "mutated"
	assert.Equal(t, "new", *u.PasswordHash, "Apply must copy values")
}
