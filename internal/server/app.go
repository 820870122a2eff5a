// Package server initializes and runs the bookinggate server.
// It selects the credential store and notification driver, bootstraps the
// first super admin, handles graceful shutdown, and starts the gRPC and
// metrics listeners.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/dmitrijs2005/bookinggate/internal/server/access"
	"github.com/dmitrijs2005/bookinggate/internal/server/auth"
	"github.com/dmitrijs2005/bookinggate/internal/server/config"
	"github.com/dmitrijs2005/bookinggate/internal/server/metrics"
	"github.com/dmitrijs2005/bookinggate/internal/server/notifications"
	"github.com/dmitrijs2005/bookinggate/internal/server/password"
	"github.com/dmitrijs2005/bookinggate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookinggate/internal/server/services"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/bookinggate/internal/server/grpc"
)

const workerConcurrency = 4

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	rdb         *redis.Client
	worker      *notifications.Worker
	metrics     *metrics.Metrics
	codec       *auth.Codec
	authService *services.AuthService
	userService *services.UserService
	gate        *access.Gate
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger, metrics: metrics.New()}

	repos, err := app.initStore(ctx)
	if err != nil {
		return nil, err
	}

	dispatcher, err := app.initDispatcher(ctx)
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	app.codec = auth.NewCodec([]byte(c.SecretKey), auth.TTLs{
		Identity:      c.IdentityTokenValidityDuration,
		PasswordReset: c.ResetTokenValidityDuration,
		PasswordSet:   c.SetTokenValidityDuration,
	})

	deps := services.Deps{
		DB:              app.db,
		Repos:           repos,
		Codec:           app.codec,
		Hasher:          password.NewHasher(password.DefaultParams()),
		Dispatcher:      dispatcher,
		Metrics:         app.metrics,
		Logger:          logger,
		FrontendBaseURL: c.FrontendBaseURL,
	}
	creator := services.NewUserCreator(deps)
	app.authService = services.NewAuthService(deps, creator)
	app.userService = services.NewUserService(deps, creator, app.authService)
	app.gate = access.NewGate(app.db, repos, app.metrics, logger)

	if c.AdminEmail != "" && c.AdminPassword != "" {
		if _, err := app.userService.EnsureSuperAdmin(ctx, c.AdminEmail, c.AdminPassword); err != nil {
			app.close(ctx)
			return nil, fmt.Errorf("super admin bootstrap error: %w", err)
		}
	}

	return app, nil
}

// initStore opens Postgres and applies migrations, or falls back to the
// in-memory store when no DSN is configured.
func (app *App) initStore(ctx context.Context) (repomanager.RepositoryManager, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "database DSN not set, using in-memory store")
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := repomanager.Open(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app.db = db
	return rm, nil
}

func (app *App) initDispatcher(ctx context.Context) (notifications.Dispatcher, error) {
	c := app.config

	switch c.NotificationDriver {
	case config.NotificationDriverLog, "":
		return notifications.NewLogDispatcher(app.logger), nil

	case config.NotificationDriverAsynq:
		app.rdb = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		mailer := notifications.LogMailer{Logger: app.logger.With("module", "mailer")}
		app.worker = notifications.NewWorker(asynq.RedisClientOpt{Addr: c.RedisAddr}, mailer, workerConcurrency, app.logger)
		return notifications.NewAsynqDispatcher(app.rdb, app.logger), nil

	case config.NotificationDriverS3:
		d, err := notifications.NewS3Dispatcher(ctx, notifications.S3Config{
			Region:       c.S3Region,
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		}, app.logger)
		if err != nil {
			return nil, fmt.Errorf("s3 dispatcher init error: %w", err)
		}
		return d, nil

	default:
		return nil, fmt.Errorf("unknown notification driver %q", c.NotificationDriver)
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService, app.userService, app.codec, app.gate)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := app.metrics.Serve(ctx, app.config.MetricsAddr); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startWorker(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.worker.Run(ctx); err != nil {
		app.logger.Error(ctx, "notification worker error", "error", err)
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives, ctx is cancelled, or one
// of the listeners fails, then releases the store and Redis connections.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	if app.worker != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startWorker(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.close(context.WithoutCancel(ctx))
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	var errs []error
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	if app.rdb != nil {
		errs = append(errs, app.rdb.Close())
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Warn(ctx, "close error", "error", err)
	}
}
