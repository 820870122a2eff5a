package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
)

// UserCreator persists new accounts. It hashes the password when one is
// given and, for self-registration, issues the one-time code that keeps the
// account unverified until VerifyOtp.
type UserCreator struct {
	deps   Deps
	logger logging.Logger
}

func NewUserCreator(d Deps) *UserCreator {
	return &UserCreator{deps: d, logger: d.Logger.With("module", "user_creator")}
}

func (c *UserCreator) Create(ctx context.Context, nu models.NewUser, withOtp bool) (*models.User, error) {
	role := nu.Role
	if role == "" {
		role = models.RoleDefaultUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrInvalidState, role)
	}

	user := &models.User{
		Email:     nu.Email,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		PhoneNo:   nu.PhoneNo,
		Dob:       nu.Dob,
		IsActive:  true,
		Role:      role,
	}

	if nu.Password != "" {
		hash, err := c.deps.Hasher.Hash(nu.Password)
		if err != nil {
			return nil, internal(ctx, c.logger, "hash password", err)
		}
		user.PasswordHash = &hash
	}

	if withOtp {
		otp, err := common.MakeNumericCode(common.OtpLength)
		if err != nil {
			return nil, internal(ctx, c.logger, "generate otp", err)
		}
		user.Otp = &otp
	}

	created, err := c.deps.users().Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, internal(ctx, c.logger, "create user", err)
	}

	c.logger.Info(ctx, "user created", "user_id", created.ID, "role", created.Role)
	return created, nil
}
