package notification

import (
	"context"
	"fmt"

	"github.com/aasthachits/chitfund/pkg/email"
)

// EmailChannel delivers messages through an email provider.
type EmailChannel struct {
	sender email.EmailSender
}

// NewEmailChannel creates an email delivery channel.
func NewEmailChannel(sender email.EmailSender) *EmailChannel {
	return &EmailChannel{sender: sender}
}

func (c *EmailChannel) Name() string {
	return "email"
}

func (c *EmailChannel) Applies(msg Message) bool {
	return msg.HTMLBody != ""
}

func (c *EmailChannel) Send(ctx context.Context, msg Message) error {
	if msg.Recipient.Email == "" {
		return fmt.Errorf("%w: recipient has no email address", ErrMissingRecipient)
	}

	return c.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   msg.Recipient.Email,
		Subject:  msg.Subject,
		BodyHTML: msg.HTMLBody,
		Tag:      msg.Tag,
	})
}
