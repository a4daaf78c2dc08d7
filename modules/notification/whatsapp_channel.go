package notification

import (
	"context"
	"fmt"

	"github.com/aasthachits/chitfund/pkg/whatsapp"
)

// WhatsAppChannel delivers messages as WhatsApp template messages.
type WhatsAppChannel struct {
	sender whatsapp.MessageSender
}

// NewWhatsAppChannel creates a WhatsApp delivery channel.
func NewWhatsAppChannel(sender whatsapp.MessageSender) *WhatsAppChannel {
	return &WhatsAppChannel{sender: sender}
}

func (c *WhatsAppChannel) Name() string {
	return "whatsapp"
}

func (c *WhatsAppChannel) Applies(msg Message) bool {
	return msg.Template != ""
}

func (c *WhatsAppChannel) Send(ctx context.Context, msg Message) error {
	if msg.Recipient.Phone == "" {
		return fmt.Errorf("%w: recipient has no phone number", ErrMissingRecipient)
	}

	return c.sender.SendTemplate(ctx, whatsapp.SendTemplateParams{
		To:         msg.Recipient.Phone,
		Template:   msg.Template,
		BodyParams: msg.Params,
	})
}
