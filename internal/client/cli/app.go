package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/dmitrijs2005/bookinggate/internal/client/client"
	"github.com/dmitrijs2005/bookinggate/internal/client/config"
	"github.com/dmitrijs2005/bookinggate/internal/common"
)

// Client is the server API the commands use. *client.GRPCClient satisfies it.
type Client interface {
	Register(ctx context.Context, req *api.RegisterRequest) (*api.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*api.User, error)
	ForgetPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
	SetPassword(ctx context.Context, token, password, confirm string) error
	VerifyOtp(ctx context.Context, userID, otp string) (*api.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	CreateUser(ctx context.Context, req *api.CreateUserRequest) (*api.User, error)
	ToggleActive(ctx context.Context, userID string) (*api.User, error)
	ListUsers(ctx context.Context, req *api.ListUsersRequest) ([]api.User, error)
	UpdateProfile(ctx context.Context, role string, req *api.UpdateProfileRequest) (*api.User, error)
	SetAccessToken(token string)
	Close() error
}

// TokenStore keeps the identity token between runs. *client.TokenStore
// satisfies it.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type App struct {
	config *config.Config
	reader *bufio.Reader

	dial      func(addr string) (Client, error)
	openStore func(path string) TokenStore

	client Client
	tokens TokenStore
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
		reader: bufio.NewReader(os.Stdin),
		dial: func(addr string) (Client, error) {
			return client.NewGRPCClient(addr)
		},
		openStore: func(path string) TokenStore {
			return client.NewTokenStore(path)
		},
	}
}

// Run executes the command line in os.Args.
func (a *App) Run(ctx context.Context) error {
	return a.RootCmd().ExecuteContext(ctx)
}

// connect dials the server and loads the saved token. It runs after flags
// are parsed so --addr and --token-file take effect.
func (a *App) connect() error {
	a.tokens = a.openStore(a.config.TokenFile)

	c, err := a.dial(a.config.ServerEndpointAddr)
	if err != nil {
		return err
	}
	a.client = c

	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.client.SetAccessToken(token)
	return nil
}

func (a *App) disconnect() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

func (a *App) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, a.config.RequestTimeout)
}

// password prompts for a password and returns it as a string, wiping the
// byte buffer it was read into.
func (a *App) password(prompt string, w io.Writer) (string, error) {
	b, err := GetPassword(a.reader, prompt, w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	return string(b), nil
}

var (
	_ Client     = (*client.GRPCClient)(nil)
	_ TokenStore = (*client.TokenStore)(nil)
)
