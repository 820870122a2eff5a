package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/hibiken/asynq"
)

// Mailer sends a rendered message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	Logger logging.Logger
}

func (m LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.Logger.Info(ctx, "mail", "to", to, "subject", subject, "body", body)
	return nil
}

// Render turns a payload into a subject and plain-text body.
func Render(p Payload) (subject, body string, err error) {
	switch p.Kind {
	case KindPasswordReset:
		subject = "Reset your password"
		body = fmt.Sprintf("Hi %s,\n\nUse the link below to reset your password:\n%s\n\nIf you did not ask for this, ignore this email.\n", p.FirstName, p.Link)
	case KindPasswordSet:
		subject = "Set your password"
		body = fmt.Sprintf("Hi %s,\n\nAn account was created for you. Use the link below to set your password:\n%s\n", p.FirstName, p.Link)
	case KindVerifyOtp:
		subject = "Confirm your account"
		body = fmt.Sprintf("Hi %s,\n\nYour verification code is %s.\n", p.FirstName, p.Code)
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", p.Kind)
	}
	return subject, body, nil
}

// Worker consumes notification tasks from the asynq queue and mails them.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	mailer Mailer
	logger logging.Logger
}

func NewWorker(redisOpt asynq.RedisConnOpt, mailer Mailer, concurrency int, logger logging.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueName: 1},
		LogLevel:    asynq.WarnLevel,
	})
	w := &Worker{srv: srv, mailer: mailer, logger: logger.With("module", "notifications", "component", "worker")}
	w.mux = asynq.NewServeMux()
	w.mux.HandleFunc(TypePasswordReset, w.handle)
	w.mux.HandleFunc(TypePasswordSet, w.handle)
	w.mux.HandleFunc(TypeVerifyOtp, w.handle)
	return w
}

func (w *Worker) handle(ctx context.Context, t *asynq.Task) error {
	var m Message
	if err := json.Unmarshal(t.Payload(), &m); err != nil {
		w.logger.Error(ctx, "notification task payload invalid", "type", t.Type(), "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	subject, body, err := Render(m.Payload)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if err := w.mailer.Send(ctx, m.Payload.Email, subject, body); err != nil {
		w.logger.Warn(ctx, "mail failed", "recipient_id", m.RecipientID, "error", err)
		return err
	}
	return nil
}

// Run starts processing and blocks until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.srv.Start(w.mux); err != nil {
		return err
	}
	<-ctx.Done()
	w.srv.Shutdown()
	return nil
}
