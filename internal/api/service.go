package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "bookinggate.v1.AuthService"

// Full method names, as seen by interceptors.
const (
	MethodRegister       = "/" + ServiceName + "/Register"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodLogout         = "/" + ServiceName + "/Logout"
	MethodGetCurrentUser = "/" + ServiceName + "/GetCurrentUser"
	MethodForgetPassword = "/" + ServiceName + "/ForgetPassword"
	MethodResetPassword  = "/" + ServiceName + "/ResetPassword"
	MethodSetPassword    = "/" + ServiceName + "/SetPassword"
	MethodVerifyOtp      = "/" + ServiceName + "/VerifyOtp"
	MethodChangePassword = "/" + ServiceName + "/ChangePassword"
	MethodCreateUser     = "/" + ServiceName + "/CreateUser"
	MethodToggleActive   = "/" + ServiceName + "/ToggleActive"
	MethodListUsers      = "/" + ServiceName + "/ListUsers"
	MethodUpdateUser     = "/" + ServiceName + "/UpdateUser"
	MethodUpdateHost     = "/" + ServiceName + "/UpdateHost"
)

// AuthServer is implemented by the server.
type AuthServer interface {
	Register(context.Context, *RegisterRequest) (*UserResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	GetCurrentUser(context.Context, *Empty) (*UserResponse, error)
	ForgetPassword(context.Context, *ForgetPasswordRequest) (*Empty, error)
	ResetPassword(context.Context, *PasswordTokenRequest) (*Empty, error)
	SetPassword(context.Context, *PasswordTokenRequest) (*Empty, error)
	VerifyOtp(context.Context, *VerifyOtpRequest) (*UserResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
	CreateUser(context.Context, *CreateUserRequest) (*UserResponse, error)
	ToggleActive(context.Context, *ToggleActiveRequest) (*UserResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*UsersResponse, error)
	UpdateUser(context.Context, *UpdateProfileRequest) (*UserResponse, error)
	UpdateHost(context.Context, *UpdateProfileRequest) (*UserResponse, error)
}

func unary[Req, Resp any](name string, call func(AuthServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AuthServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AuthServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes AuthService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", AuthServer.Register),
		unary("Login", AuthServer.Login),
		unary("Logout", AuthServer.Logout),
		unary("GetCurrentUser", AuthServer.GetCurrentUser),
		unary("ForgetPassword", AuthServer.ForgetPassword),
		unary("ResetPassword", AuthServer.ResetPassword),
		unary("SetPassword", AuthServer.SetPassword),
		unary("VerifyOtp", AuthServer.VerifyOtp),
		unary("ChangePassword", AuthServer.ChangePassword),
		unary("CreateUser", AuthServer.CreateUser),
		unary("ToggleActive", AuthServer.ToggleActive),
		unary("ListUsers", AuthServer.ListUsers),
		unary("UpdateUser", AuthServer.UpdateUser),
		unary("UpdateHost", AuthServer.UpdateHost),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookinggate/v1/auth",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// AuthClient calls AuthService over a connection. Every call uses the JSON
// codec.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *AuthClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *AuthClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *AuthClient) GetCurrentUser(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodGetCurrentUser, in, opts)
}

func (c *AuthClient) ForgetPassword(ctx context.Context, in *ForgetPasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodForgetPassword, in, opts)
}

func (c *AuthClient) ResetPassword(ctx context.Context, in *PasswordTokenRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodResetPassword, in, opts)
}

func (c *AuthClient) SetPassword(ctx context.Context, in *PasswordTokenRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodSetPassword, in, opts)
}

func (c *AuthClient) VerifyOtp(ctx context.Context, in *VerifyOtpRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodVerifyOtp, in, opts)
}

func (c *AuthClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodChangePassword, in, opts)
}

func (c *AuthClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodCreateUser, in, opts)
}

func (c *AuthClient) ToggleActive(ctx context.Context, in *ToggleActiveRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodToggleActive, in, opts)
}

func (c *AuthClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*UsersResponse, error) {
	return invoke[UsersResponse](ctx, c.cc, MethodListUsers, in, opts)
}

// UpdateUser updates the profile of a DEFAULT_USER caller.
func (c *AuthClient) UpdateUser(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodUpdateUser, in, opts)
}

// UpdateHost updates the profile of a VENDOR caller.
func (c *AuthClient) UpdateHost(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodUpdateHost, in, opts)
}
