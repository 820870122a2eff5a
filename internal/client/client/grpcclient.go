// Package client talks to the bookinggate gRPC endpoint on behalf of the
// operator CLI and keeps the identity token between runs.
package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/dmitrijs2005/bookinggate/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authAPI is the method set of *api.AuthClient used here.
type authAPI interface {
	Register(ctx context.Context, in *api.RegisterRequest, opts ...grpc.CallOption) (*api.UserResponse, error)
	Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.LoginResponse, error)
	Logout(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.Empty, error)
	GetCurrentUser(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.UserResponse, error)
	ForgetPassword(ctx context.Context, in *api.ForgetPasswordRequest, opts ...grpc.CallOption) (*api.Empty, error)
	ResetPassword(ctx context.Context, in *api.PasswordTokenRequest, opts ...grpc.CallOption) (*api.Empty, error)
	SetPassword(ctx context.Context, in *api.PasswordTokenRequest, opts ...grpc.CallOption) (*api.Empty, error)
	VerifyOtp(ctx context.Context, in *api.VerifyOtpRequest, opts ...grpc.CallOption) (*api.UserResponse, error)
	ChangePassword(ctx context.Context, in *api.ChangePasswordRequest, opts ...grpc.CallOption) (*api.Empty, error)
	CreateUser(ctx context.Context, in *api.CreateUserRequest, opts ...grpc.CallOption) (*api.UserResponse, error)
	ToggleActive(ctx context.Context, in *api.ToggleActiveRequest, opts ...grpc.CallOption) (*api.UserResponse, error)
	ListUsers(ctx context.Context, in *api.ListUsersRequest, opts ...grpc.CallOption) (*api.UsersResponse, error)
	UpdateUser(ctx context.Context, in *api.UpdateProfileRequest, opts ...grpc.CallOption) (*api.UserResponse, error)
	UpdateHost(ctx context.Context, in *api.UpdateProfileRequest, opts ...grpc.CallOption) (*api.UserResponse, error)
}

var _ authAPI = (*api.AuthClient)(nil)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      authAPI
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(api.CallOption()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewAuthClient(conn)
	return nil
}

// SetAccessToken sets the identity token sent with every later call.
func (s *GRPCClient) SetAccessToken(token string) {
	s.accessToken = token
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, req *api.RegisterRequest) (*api.User, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

// Login stores the returned identity token for later calls and returns it.
func (s *GRPCClient) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	s.accessToken = resp.AccessToken
	return resp.AccessToken, nil
}

func (s *GRPCClient) Logout(ctx context.Context) error {
	if _, err := s.client.Logout(ctx, &api.Empty{}); err != nil {
		return s.mapError(err)
	}
	s.accessToken = ""
	return nil
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (*api.User, error) {
	resp, err := s.client.GetCurrentUser(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) ForgetPassword(ctx context.Context, email string) error {
	_, err := s.client.ForgetPassword(ctx, &api.ForgetPasswordRequest{Email: email})
	return s.mapError(err)
}

func (s *GRPCClient) ResetPassword(ctx context.Context, token, password, confirm string) error {
	_, err := s.client.ResetPassword(ctx, &api.PasswordTokenRequest{Token: token, Password: password, ConfirmPassword: confirm})
	return s.mapError(err)
}

func (s *GRPCClient) SetPassword(ctx context.Context, token, password, confirm string) error {
	_, err := s.client.SetPassword(ctx, &api.PasswordTokenRequest{Token: token, Password: password, ConfirmPassword: confirm})
	return s.mapError(err)
}

func (s *GRPCClient) VerifyOtp(ctx context.Context, userID, otp string) (*api.User, error) {
	resp, err := s.client.VerifyOtp(ctx, &api.VerifyOtpRequest{UserID: userID, Otp: otp})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, current, next string) error {
	_, err := s.client.ChangePassword(ctx, &api.ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
	return s.mapError(err)
}

func (s *GRPCClient) CreateUser(ctx context.Context, req *api.CreateUserRequest) (*api.User, error) {
	resp, err := s.client.CreateUser(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) ToggleActive(ctx context.Context, userID string) (*api.User, error) {
	resp, err := s.client.ToggleActive(ctx, &api.ToggleActiveRequest{UserID: userID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context, req *api.ListUsersRequest) ([]api.User, error) {
	resp, err := s.client.ListUsers(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Users, nil
}

// UpdateProfile picks the profile method matching the caller's role:
// vendors go through UpdateHost, everyone else through UpdateUser.
func (s *GRPCClient) UpdateProfile(ctx context.Context, role string, req *api.UpdateProfileRequest) (*api.User, error) {
	call := s.client.UpdateUser
	if role == "VENDOR" {
		call = s.client.UpdateHost
	}
	resp, err := call(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return &ForbiddenError{Message: st.Message(), RolesRequired: api.RolesRequired(err)}
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %s", st.Message())
	}
}
