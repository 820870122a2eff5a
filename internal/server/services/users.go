package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
)

// UserService covers account administration.
type UserService struct {
	deps    Deps
	creator *UserCreator
	auth    *AuthService
	logger  logging.Logger
}

func NewUserService(d Deps, creator *UserCreator, authService *AuthService) *UserService {
	return &UserService{deps: d, creator: creator, auth: authService, logger: d.Logger.With("module", "user_service")}
}

// CreateUser invites a user: the account is created without a password
// (VENDOR unless another role is given) and a set-password link is sent.
func (s *UserService) CreateUser(ctx context.Context, nu models.NewUser) (*models.User, error) {
	if nu.Email == "" {
		return nil, common.ErrInvalidState
	}
	if nu.Role == "" {
		nu.Role = models.RoleVendor
	}
	nu.Password = ""

	user, err := s.creator.Create(ctx, nu, false)
	if err != nil {
		return nil, err
	}

	if err := s.auth.PrepareSetPassword(ctx, user); err != nil {
		return nil, err
	}

	return user.Redacted(), nil
}

// ToggleActive flips the active flag and returns the updated user.
func (s *UserService) ToggleActive(ctx context.Context, userID string) (*models.User, error) {
	repo := s.deps.users()

	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "find user", err)
	}

	active := !user.IsActive
	if err := repo.Update(ctx, user.ID, models.Fields{IsActive: &active}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "update user", err)
	}
	user.IsActive = active

	s.logger.Info(ctx, "user active flag changed", "user_id", user.ID, "is_active", active)
	return user.Redacted(), nil
}

// ListUsers returns redacted accounts in creation order.
func (s *UserService) ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrInvalidState, filter.Role)
	}

	list, err := s.deps.users().List(ctx, filter)
	if err != nil {
		return nil, internal(ctx, s.logger, "list users", err)
	}

	for i, u := range list {
		list[i] = u.Redacted()
	}
	return list, nil
}

// UpdateProfile changes the caller's own name and phone number and
// returns the updated user.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, p models.Profile) (*models.User, error) {
	if p.FirstName != nil && *p.FirstName == "" {
		return nil, fmt.Errorf("%w: first name is required", common.ErrInvalidState)
	}

	repo := s.deps.users()
	fields := models.Fields{FirstName: p.FirstName, LastName: p.LastName, PhoneNo: p.PhoneNo}

	if err := repo.Update(ctx, userID, fields); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "update profile", err)
	}

	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "find user", err)
	}

	s.logger.Info(ctx, "profile updated", "user_id", user.ID)
	return user.Redacted(), nil
}

func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.deps.users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "find user", err)
	}
	return user.Redacted(), nil
}

// EnsureSuperAdmin creates a verified SUPER_ADMIN with the given
// credentials unless an account with that email already exists. The
// boolean reports whether a new account was created.
func (s *UserService) EnsureSuperAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, common.ErrInvalidState
	}

	_, err := s.deps.users().FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Debug(ctx, "super admin already present", "email", email)
		return false, nil
	case !errors.Is(err, common.ErrorNotFound):
		return false, internal(ctx, s.logger, "find user", err)
	}

	user, err := s.creator.Create(ctx, models.NewUser{
		Email:     email,
		FirstName: "Super",
		LastName:  "Admin",
		Password:  password,
		Role:      models.RoleSuperAdmin,
	}, false)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info(ctx, "super admin created", "user_id", user.ID)
	return true, nil
}
