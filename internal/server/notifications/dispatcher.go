// Package notifications delivers verification codes, password reset and
// set-password messages.
// Delivery is best effort: callers log a failed Enqueue and move on.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bookinggate/internal/logging"
)

// Kind names a notification template.
type Kind string

const (
	KindPasswordReset Kind = "password_reset"
	KindPasswordSet   Kind = "password_set"
	KindVerifyOtp     Kind = "verify_otp"
)

// Payload is what a template needs to render. Link carries a token for the
// password kinds; Code carries the one-time code for KindVerifyOtp.
type Payload struct {
	Kind      Kind   `json:"kind"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Link      string `json:"link,omitempty"`
	Code      string `json:"code,omitempty"`
}

// Message is the envelope written to the queue or outbox.
type Message struct {
	RecipientID string  `json:"recipient_id"`
	Payload     Payload `json:"payload"`
}

func (m Message) encode() ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	return b, nil
}

// Dispatcher hands a notification to whatever delivers it.
type Dispatcher interface {
	Enqueue(ctx context.Context, recipientID string, p Payload) error
}

// LogDispatcher only logs the notification. It is the default driver for
// local runs.
type LogDispatcher struct {
	logger logging.Logger
}

func NewLogDispatcher(logger logging.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.With("module", "notifications")}
}

func (d *LogDispatcher) Enqueue(ctx context.Context, recipientID string, p Payload) error {
	d.logger.Info(ctx, "notification", "recipient_id", recipientID, "kind", p.Kind, "email", p.Email)
	if p.Link != "" {
		d.logger.Debug(ctx, "notification link", "recipient_id", recipientID, "link", p.Link)
	}
	if p.Code != "" {
		d.logger.Debug(ctx, "notification code", "recipient_id", recipientID, "code", p.Code)
	}
	return nil
}
