package notification

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dealdesk/dealdesk/internal/logger"
)

// Sender delivers best-effort notifications. Callers must treat failures
// as non-fatal: an error here must never roll back business state.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

const (
	sendTimeout    = 30 * time.Second
	maxSendRetries = 3
)

type emailSender struct {
	client *EmailClient
	logger *logger.Logger
}

// NewEmailSender creates a Sender backed by the email client, retrying
// transient failures with exponential backoff.
func NewEmailSender(client *EmailClient, logger *logger.Logger) Sender {
	return &emailSender{client: client, logger: logger}
}

func (s *emailSender) Send(ctx context.Context, to, subject, body string) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping notification",
			"to", to,
			"subject", subject,
		)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	operation := func() error {
		_, err := s.client.SendEmail(ctx, to, subject, body)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxSendRetries),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		return err
	}

	s.logger.Infow("notification sent",
		"to", to,
		"subject", subject,
	)
	return nil
}
