package notifications

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/bookinggate/internal/logging"
)

func newBufferLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), &buf
}

func resetPayload() Payload {
	return Payload{
		Kind:      KindPasswordReset,
		Email:     "a@example.com",
		FirstName: "Ann",
		Link:      "https://app.example.com/reset-password?token=T1",
	}
}
