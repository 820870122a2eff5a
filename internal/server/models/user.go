// Package models holds the records the server persists.
package models

import (
	"slices"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleVendor      Role = "VENDOR"
	RoleDefaultUser Role = "DEFAULT_USER"
)

var roles = []Role{RoleSuperAdmin, RoleVendor, RoleDefaultUser}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return slices.Contains(roles, r)
}

// User is an account record. Nullable columns are pointers: a nil
// PasswordHash means no password was ever set, a non-nil Otp means the
// account is still pending verification. PasswordResetToken and
// SetPasswordToken each hold at most one outstanding token.
type User struct {
	ID                 string
	Email              string
	FirstName          string
	LastName           string
	PhoneNo            string
	Dob                *time.Time
	PasswordHash       *string
	IsActive           bool
	Otp                *string
	PasswordResetToken *string
	SetPasswordToken   *string
	Role               Role
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Verified reports whether the one-time code has been consumed.
func (u *User) Verified() bool {
	return u.Otp == nil
}

// Redacted returns a copy without the password hash, pending code and
// outstanding tokens, suitable for handing to callers.
func (u *User) Redacted() *User {
	c := *u
	c.PasswordHash = nil
	c.Otp = nil
	c.PasswordResetToken = nil
	c.SetPasswordToken = nil
	return &c
}

// NewUser carries the fields needed to create an account. Password is
// plaintext and may be empty for invited accounts.
type NewUser struct {
	Email     string
	FirstName string
	LastName  string
	PhoneNo   string
	Dob       *time.Time
	Password  string
	Role      Role
}

// Fields is a partial update of a single user. Nil pointers are left
// unchanged.
type Fields struct {
	FirstName          *string
	LastName           *string
	PhoneNo            *string
	PasswordHash       *string
	IsActive           *bool
	ClearOtp           bool
	PasswordResetToken *string
	SetPasswordToken   *string
}

// Empty reports whether the update changes nothing.
func (f Fields) Empty() bool {
	return f.FirstName == nil && f.LastName == nil && f.PhoneNo == nil &&
		f.PasswordHash == nil && f.IsActive == nil && !f.ClearOtp &&
		f.PasswordResetToken == nil && f.SetPasswordToken == nil
}

// Apply writes the set fields onto u.
func (f Fields) Apply(u *User) {
	if f.FirstName != nil {
		u.FirstName = *f.FirstName
	}
	if f.LastName != nil {
		u.LastName = *f.LastName
	}
	if f.PhoneNo != nil {
		u.PhoneNo = *f.PhoneNo
	}
	if f.PasswordHash != nil {
		v := *f.PasswordHash
		u.PasswordHash = &v
	}
	if f.IsActive != nil {
		u.IsActive = *f.IsActive
	}
	if f.ClearOtp {
		u.Otp = nil
	}
	if f.PasswordResetToken != nil {
		v := *f.PasswordResetToken
		u.PasswordResetToken = &v
	}
	if f.SetPasswordToken != nil {
		v := *f.SetPasswordToken
		u.SetPasswordToken = &v
	}
}

// UserFilter narrows a user listing. A zero Limit means no limit.
type UserFilter struct {
	Role   Role
	Limit  int
	Offset int
}

// Profile is the self-service part of an account. Nil fields are left as
// they are.
type Profile struct {
	FirstName *string
	LastName  *string
	PhoneNo   *string
}
