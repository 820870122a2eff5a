// Package grpc exposes the auth and user services over gRPC with the JSON
// codec from internal/api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/dmitrijs2005/bookinggate/internal/server/access"
	"github.com/dmitrijs2005/bookinggate/internal/server/auth"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
)

// AuthService is the subset of services.AuthService the handlers call.
type AuthService interface {
	Register(ctx context.Context, nu models.NewUser) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, userID string) error
	ForgetPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
	SetPassword(ctx context.Context, token, password, confirm string) error
	VerifyOtp(ctx context.Context, userID, otp string) (*models.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// UserService is the subset of services.UserService the handlers call.
type UserService interface {
	CreateUser(ctx context.Context, nu models.NewUser) (*models.User, error)
	ToggleActive(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	UpdateProfile(ctx context.Context, userID string, p models.Profile) (*models.User, error)
}

// TokenVerifier turns a bearer token into claims. *auth.Codec satisfies it.
type TokenVerifier interface {
	Verify(token string, kind auth.Kind) (*auth.Claims, error)
}

// Authorizer is the access gate. *access.Gate satisfies it.
type Authorizer interface {
	Authorize(ctx context.Context, claims *auth.Claims, req access.Requirement) (*models.User, error)
}

type GRPCServer struct {
	address  string
	auth     AuthService
	users    UserService
	tokens   TokenVerifier
	gate     Authorizer
	validate *validator.Validate
	logger   logging.Logger
}

var _ api.AuthServer = (*GRPCServer)(nil)

func NewGRPCServer(address string, l logging.Logger, as AuthService, us UserService, tv TokenVerifier, gate Authorizer) *GRPCServer {
	return &GRPCServer{
		address:  address,
		auth:     as,
		users:    us,
		tokens:   tv,
		gate:     gate,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   l.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterAuthServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	<-stopped
	return nil
}
