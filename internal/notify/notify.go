// Package notify defines the notification gateway contract used by task
// processing. The engine resolves template placeholders before calling Send;
// a failed Send aborts the triggering transition.
package notify

import (
	"context"

	"github.com/lenskeep/studio/internal/logger"
)

// Sender delivers a prepared message to a recipient address
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes outgoing messages to the application log. It is the
// default gateway; a real mail provider slots in behind Sender.
type LogSender struct{}

// NewLogSender creates a new log backed sender
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the message instead of delivering it
func (s *LogSender) Send(_ context.Context, recipient, subject, body string) error {
	logger.InfoWithFields("sending notification", map[string]interface{}{
		"recipient": recipient,
		"subject":   subject,
		"body":      body,
	})
	return nil
}
