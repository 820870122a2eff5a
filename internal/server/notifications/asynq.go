package notifications

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// QueueName is the asynq queue notifications are enqueued on.
const QueueName = "notifications"

const (
	TypePasswordReset = "email:password_reset"
	TypePasswordSet   = "email:password_set"
	TypeVerifyOtp     = "email:verify_otp"
)

func taskType(k Kind) (string, error) {
	switch k {
	case KindPasswordReset:
		return TypePasswordReset, nil
	case KindPasswordSet:
		return TypePasswordSet, nil
	case KindVerifyOtp:
		return TypeVerifyOtp, nil
	}
	return "", fmt.Errorf("unknown notification kind %q", k)
}

// AsynqDispatcher enqueues notifications as asynq tasks on Redis.
type AsynqDispatcher struct {
	client *asynq.Client
	logger logging.Logger
}

// NewAsynqDispatcher builds a dispatcher on top of an existing go-redis client.
// The caller keeps ownership of rdb and closes it.
func NewAsynqDispatcher(rdb redis.UniversalClient, logger logging.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClientFromRedisClient(rdb),
		logger: logger.With("module", "notifications", "driver", "asynq"),
	}
}

func (d *AsynqDispatcher) Enqueue(ctx context.Context, recipientID string, p Payload) error {
	typ, err := taskType(p.Kind)
	if err != nil {
		return err
	}

	body, err := Message{RecipientID: recipientID, Payload: p}.encode()
	if err != nil {
		return err
	}

	info, err := d.client.EnqueueContext(ctx, asynq.NewTask(typ, body), asynq.Queue(QueueName), asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", typ, err)
	}

	d.logger.Debug(ctx, "notification enqueued", "task_id", info.ID, "type", typ, "recipient_id", recipientID)
	return nil
}
