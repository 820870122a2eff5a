package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/dmitrijs2005/bookinggate/internal/server/auth"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/dmitrijs2005/bookinggate/internal/server/notifications"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService implements the credential flows. It keeps no state between
// calls; everything lives on the user record.
//
// Writes are single-row updates with no version check, so two flows racing
// on the same user resolve as last writer wins.
type AuthService struct {
	deps    Deps
	creator *UserCreator
	logger  logging.Logger
}

func NewAuthService(d Deps, creator *UserCreator) *AuthService {
	return &AuthService{deps: d, creator: creator, logger: d.Logger.With("module", "auth_service")}
}

// Register creates a self-registered account that stays unverified until
// its one-time code is confirmed. The code is sent to the registrant and
// never returned.
func (s *AuthService) Register(ctx context.Context, nu models.NewUser) (*models.User, error) {
	u, err := s.creator.Create(ctx, nu, true)
	if err != nil {
		return nil, err
	}

	if u.Otp != nil {
		s.notify(ctx, u.ID, notifications.Payload{
			Kind:      notifications.KindVerifyOtp,
			Email:     u.Email,
			FirstName: u.FirstName,
			Code:      *u.Otp,
		})
	}

	return u.Redacted(), nil
}

// Login returns an identity token. Unknown email and wrong password give
// the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.deps.users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.deps.Metrics.Login("invalid_credentials")
			return "", common.ErrInvalidCredentials
		}
		return "", internal(ctx, s.logger, "find user", err)
	}

	if user.PasswordHash == nil || !s.deps.Hasher.Compare(*user.PasswordHash, password) {
		s.deps.Metrics.Login("invalid_credentials")
		return "", common.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.deps.Metrics.Login("disabled")
		return "", common.ErrAccountDisabled
	}

	token, err := s.deps.Codec.Sign(auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
		Email:            user.Email,
		PhoneNo:          user.PhoneNo,
		Role:             user.Role,
	}, auth.KindIdentity)
	if err != nil {
		return "", internal(ctx, s.logger, "sign identity token", err)
	}

	s.deps.Metrics.Login("ok")
	s.logger.Info(ctx, "login", "user_id", user.ID)
	return token, nil
}

// Logout is a no-op on the server: identity tokens are not tracked, the
// client just drops its copy.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	s.logger.Debug(ctx, "logout", "user_id", userID)
	return nil
}

// ForgetPassword issues a reset token into the user's reset slot and sends
// the reset link. An unknown email is reported as common.ErrorNotFound.
func (s *AuthService) ForgetPassword(ctx context.Context, email string) error {
	user, err := s.deps.users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return internal(ctx, s.logger, "find user", err)
	}

	if user.Email == "" || user.FirstName == "" {
		return common.ErrInvalidState
	}

	return s.issueSlotToken(ctx, user, auth.KindPasswordReset)
}

// PrepareSetPassword issues a set-password token for an account without a
// password and sends the link.
func (s *AuthService) PrepareSetPassword(ctx context.Context, user *models.User) error {
	if user.Email == "" {
		return common.ErrInvalidState
	}
	return s.issueSlotToken(ctx, user, auth.KindPasswordSet)
}

// issueSlotToken signs a reset or set token, overwrites the matching slot
// and dispatches the notification. The stored token stays even when the
// dispatch fails.
func (s *AuthService) issueSlotToken(ctx context.Context, user *models.User, kind auth.Kind) error {
	token, err := s.deps.Codec.Sign(auth.Claims{Email: user.Email, UserID: user.ID}, kind)
	if err != nil {
		return internal(ctx, s.logger, "sign token", err)
	}

	var (
		fields models.Fields
		page   string
		nkind  notifications.Kind
	)
	switch kind {
	case auth.KindPasswordReset:
		fields.PasswordResetToken = &token
		page, nkind = "reset-password", notifications.KindPasswordReset
	case auth.KindPasswordSet:
		fields.SetPasswordToken = &token
		page, nkind = "set-password", notifications.KindPasswordSet
	}

	if err := s.deps.users().Update(ctx, user.ID, fields); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return internal(ctx, s.logger, "store token", err)
	}

	href, err := link(s.deps.FrontendBaseURL, page, token)
	if err != nil {
		return internal(ctx, s.logger, "build link", err)
	}

	s.notify(ctx, user.ID, notifications.Payload{
		Kind:      nkind,
		Email:     user.Email,
		FirstName: user.FirstName,
		Link:      href,
	})
	return nil
}

// notify is best effort: a failed dispatch is counted and logged.
func (s *AuthService) notify(ctx context.Context, userID string, p notifications.Payload) {
	err := s.deps.Dispatcher.Enqueue(ctx, userID, p)
	s.deps.Metrics.Notification(string(p.Kind), err == nil)
	if err != nil {
		s.logger.Warn(ctx, "notification dispatch failed", "user_id", userID, "kind", p.Kind, "error", err)
	}
}

// ResetPassword sets a new password using a token from ForgetPassword.
// The token must be the one currently stored on the user.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	return s.redeemSlotToken(ctx, auth.KindPasswordReset, token, password, confirm)
}

// SetPassword is ResetPassword for invited accounts, against the set slot.
func (s *AuthService) SetPassword(ctx context.Context, token, password, confirm string) error {
	return s.redeemSlotToken(ctx, auth.KindPasswordSet, token, password, confirm)
}

// redeemSlotToken looks the user up by the stored slot first, then checks
// the token itself. The slot is left as is after a successful write, so the
// same token keeps working until it expires or a new one is issued.
func (s *AuthService) redeemSlotToken(ctx context.Context, kind auth.Kind, token, password, confirm string) error {
	if token == "" {
		return common.ErrInvalidToken
	}

	repo := s.deps.users()

	var (
		user *models.User
		err  error
		flow string
	)
	switch kind {
	case auth.KindPasswordReset:
		user, err = repo.FindByResetToken(ctx, token)
		flow = "reset"
	default:
		user, err = repo.FindBySetToken(ctx, token)
		flow = "set"
	}
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return internal(ctx, s.logger, "find user by token", err)
	}

	claims, err := s.deps.Codec.Verify(token, kind)
	if err != nil {
		return err
	}
	if claims.UserID != user.ID {
		return common.ErrInvalidToken
	}

	if password != confirm {
		return common.ErrPasswordMismatch
	}

	if err := s.writePassword(ctx, user.ID, password); err != nil {
		return err
	}

	s.deps.Metrics.PasswordChanged(flow)
	s.logger.Info(ctx, "password "+flow, "user_id", user.ID)
	return nil
}

func (s *AuthService) writePassword(ctx context.Context, userID, password string) error {
	hash, err := s.deps.Hasher.Hash(password)
	if err != nil {
		return internal(ctx, s.logger, "hash password", err)
	}

	if err := s.deps.users().Update(ctx, userID, models.Fields{PasswordHash: &hash}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return internal(ctx, s.logger, "store password", err)
	}
	return nil
}

// VerifyOtp clears the one-time code when otp matches it exactly. A user
// already verified has no code, so any further attempt fails.
func (s *AuthService) VerifyOtp(ctx context.Context, userID, otp string) (*models.User, error) {
	repo := s.deps.users()

	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "find user", err)
	}

	if user.Otp == nil || *user.Otp != otp {
		return nil, common.ErrInvalidOtp
	}

	if err := repo.Update(ctx, user.ID, models.Fields{ClearOtp: true}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal(ctx, s.logger, "clear otp", err)
	}
	user.Otp = nil

	s.logger.Info(ctx, "user verified", "user_id", user.ID)
	return user.Redacted(), nil
}

// ChangePassword rotates the password of an authenticated user. There is
// no confirmation field; the session already vouches for the caller.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.deps.users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return internal(ctx, s.logger, "find user", err)
	}

	if user.PasswordHash == nil {
		return common.ErrorNotFound
	}

	if !s.deps.Hasher.Compare(*user.PasswordHash, current) {
		return common.ErrInvalidCredentials
	}

	if err := s.writePassword(ctx, user.ID, next); err != nil {
		return err
	}

	s.deps.Metrics.PasswordChanged("change")
	s.logger.Info(ctx, "password changed", "user_id", user.ID)
	return nil
}
