package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer delivers HTML mail through the Resend API. The From address is
// fixed at construction; callers only choose recipient, subject and body.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *ResendMailer) Send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send mail failed: %w", err)
	}
	return nil
}
