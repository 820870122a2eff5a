package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/dmitrijs2005/bookinggate/internal/server/access"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const dateLayout = "2006-01-02"

// check runs the validator tags on a request message.
func (s *GRPCServer) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return status.Error(codes.InvalidArgument, "invalid request")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return status.Error(codes.InvalidArgument, "invalid request: "+strings.Join(msgs, ", "))
}

func currentUser(ctx context.Context) (*models.User, error) {
	u, ok := access.UserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, access.ReasonNotAuthenticated)
	}
	return u, nil
}

func toAPIUser(u *models.User) api.User {
	out := api.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhoneNo:   u.PhoneNo,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		Verified:  u.Verified(),
		CreatedAt: u.CreatedAt,
	}
	if u.Dob != nil {
		out.Dob = u.Dob.Format(dateLayout)
	}
	return out
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.UserResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	nu := models.NewUser{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhoneNo:   req.PhoneNo,
		Password:  req.Password,
	}
	if req.Dob != "" {
		dob, err := time.Parse(dateLayout, req.Dob)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "invalid request: dob")
		}
		nu.Dob = &dob
	}

	u, err := s.auth.Register(ctx, nu)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &api.UserResponse{User: toAPIUser(u)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	token, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.auth.Logout(ctx, u.ID); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) GetCurrentUser(ctx context.Context, _ *api.Empty) (*api.UserResponse, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return &api.UserResponse{User: toAPIUser(u)}, nil
}

func (s *GRPCServer) ForgetPassword(ctx context.Context, req *api.ForgetPasswordRequest) (*api.Empty, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	if err := s.auth.ForgetPassword(ctx, req.Email); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *api.PasswordTokenRequest) (*api.Empty, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	if err := s.auth.ResetPassword(ctx, req.Token, req.Password, req.ConfirmPassword); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) SetPassword(ctx context.Context, req *api.PasswordTokenRequest) (*api.Empty, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	if err := s.auth.SetPassword(ctx, req.Token, req.Password, req.ConfirmPassword); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) VerifyOtp(ctx context.Context, req *api.VerifyOtpRequest) (*api.UserResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	u, err := s.auth.VerifyOtp(ctx, req.UserID, req.Otp)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.UserResponse{User: toAPIUser(u)}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.Empty, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	if err := s.auth.ChangePassword(ctx, u.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) CreateUser(ctx context.Context, req *api.CreateUserRequest) (*api.UserResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	u, err := s.users.CreateUser(ctx, models.NewUser{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhoneNo:   req.PhoneNo,
		Role:      models.Role(req.Role),
	})
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "User invited", "user_id", u.ID, "role", u.Role)
	return &api.UserResponse{User: toAPIUser(u)}, nil
}

func (s *GRPCServer) ToggleActive(ctx context.Context, req *api.ToggleActiveRequest) (*api.UserResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	u, err := s.users.ToggleActive(ctx, req.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.UserResponse{User: toAPIUser(u)}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, req *api.ListUsersRequest) (*api.UsersResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	list, err := s.users.ListUsers(ctx, models.UserFilter{
		Role:   models.Role(req.Role),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	out := &api.UsersResponse{Users: make([]api.User, 0, len(list))}
	for _, u := range list {
		out.Users = append(out.Users, toAPIUser(u))
	}
	return out, nil
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *api.UpdateProfileRequest) (*api.UserResponse, error) {
	return s.updateProfile(ctx, req)
}

func (s *GRPCServer) UpdateHost(ctx context.Context, req *api.UpdateProfileRequest) (*api.UserResponse, error) {
	return s.updateProfile(ctx, req)
}

// updateProfile serves both profile methods; the interceptor has already
// checked the caller's role.
func (s *GRPCServer) updateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.UserResponse, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateProfile(ctx, u.ID, models.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhoneNo:   req.PhoneNo,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.UserResponse{User: toAPIUser(updated)}, nil
}
