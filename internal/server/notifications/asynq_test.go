package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/bookinggate/internal/logging"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestAsynqDispatcher_EnqueuesPendingTask(t *testing.T) {
	mr, rdb := newRedis(t)
	d := NewAsynqDispatcher(rdb, logging.Nop{})

	require.NoError(t, d.Enqueue(context.Background(), "u-1", resetPayload()))

	pending, err := mr.List("asynq:{" + QueueName + "}:pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestTaskType(t *testing.T) {
	typ, err := taskType(KindVerifyOtp)
	require.NoError(t, err)
	assert.Equal(t, TypeVerifyOtp, typ)
}

func TestAsynqDispatcher_UnknownKind(t *testing.T) {
	mr, rdb := newRedis(t)
	d := NewAsynqDispatcher(rdb, logging.Nop{})

	err := d.Enqueue(context.Background(), "u-1", Payload{Kind: "sms"})
	assert.Error(t, err)
	assert.False(t, mr.Exists("asynq:{"+QueueName+"}:pending"))
}

func TestAsynqDispatcher_RedisDown(t *testing.T) {
	mr, rdb := newRedis(t)
	d := NewAsynqDispatcher(rdb, logging.Nop{})
	mr.Close()

	err := d.Enqueue(context.Background(), "u-1", resetPayload())
	assert.Error(t, err)
}

type recordingMailer struct {
	to, subject, body string
	err               error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func newTestWorker(t *testing.T, m Mailer) *Worker {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewWorker(asynq.RedisClientOpt{Addr: mr.Addr()}, m, 1, logging.Nop{})
}

func task(t *testing.T, typ string, m Message) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return asynq.NewTask(typ, b)
}

func TestWorker_HandleSendsMail(t *testing.T) {
	m := &recordingMailer{}
	w := newTestWorker(t, m)

	err := w.handle(context.Background(), task(t, TypePasswordReset, Message{RecipientID: "u-1", Payload: resetPayload()}))
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", m.to)
	assert.Equal(t, "Reset your password", m.subject)
	assert.Contains(t, m.body, "token=T1")
}

func TestWorker_HandleVerifyOtp(t *testing.T) {
	m := &recordingMailer{}
	w := newTestWorker(t, m)

	p := Payload{Kind: KindVerifyOtp, Email: "a@example.com", FirstName: "Ann", Code: "042917"}
	err := w.handle(context.Background(), task(t, TypeVerifyOtp, Message{RecipientID: "u-1", Payload: p}))
	require.NoError(t, err)
	assert.Equal(t, "Confirm your account", m.subject)
	assert.Contains(t, m.body, "042917")
}

func TestWorker_BadPayloadSkipsRetry(t *testing.T) {
	w := newTestWorker(t, &recordingMailer{})

	err := w.handle(context.Background(), asynq.NewTask(TypePasswordSet, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = w.handle(context.Background(), task(t, TypePasswordSet, Message{Payload: Payload{Kind: "bogus"}}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestWorker_MailerErrorIsRetried(t *testing.T) {
	boom := errors.New("smtp down")
	w := newTestWorker(t, &recordingMailer{err: boom})

	err := w.handle(context.Background(), task(t, TypePasswordSet, Message{Payload: resetPayload()}))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestLogMailer(t *testing.T) {
	logger, buf := newBufferLogger(t)
	require.NoError(t, LogMailer{Logger: logger}.Send(context.Background(), "a@example.com", "hi", "body"))
	assert.Contains(t, buf.String(), "to=a@example.com")
}
