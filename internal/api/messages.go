package api

import "time"

// Validation tags are checked by the server with go-playground/validator.

type Empty struct{}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	PhoneNo   string `json:"phoneNo,omitempty" validate:"omitempty,e164"`
	Dob       string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordTokenRequest serves both ResetPassword and SetPassword. Whether
// the two passwords match is decided by the service, not the validator.
type PasswordTokenRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type VerifyOtpRequest struct {
	UserID string `json:"userId" validate:"required"`
	Otp    string `json:"otp" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	PhoneNo   string `json:"phoneNo,omitempty" validate:"omitempty,e164"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=SUPER_ADMIN VENDOR DEFAULT_USER"`
}

type ToggleActiveRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type ListUsersRequest struct {
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=SUPER_ADMIN VENDOR DEFAULT_USER"`
	Limit  int    `json:"limit,omitempty" validate:"min=0,max=100"`
	Offset int    `json:"offset,omitempty" validate:"min=0"`
}

// UpdateProfileRequest changes the caller's own profile. Absent fields are
// left as they are; an empty phone number clears it.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	PhoneNo   *string `json:"phoneNo,omitempty" validate:"omitempty,e164"`
}

// User is the public view of an account. It never carries the password
// hash, the one-time code or outstanding tokens.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	PhoneNo   string    `json:"phoneNo,omitempty"`
	Dob       string    `json:"dob,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserResponse struct {
	User User `json:"user"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}
