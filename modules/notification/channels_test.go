package notification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/modules/notification"
	"github.com/aasthachits/chitfund/pkg/email"
	"github.com/aasthachits/chitfund/pkg/whatsapp"
)

type fakeEmailSender struct {
	params []email.SendEmailParams
	err    error
}

func (s *fakeEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	s.params = append(s.params, params)
	return s.err
}

type fakeWhatsAppSender struct {
	params []whatsapp.SendTemplateParams
	err    error
}

func (s *fakeWhatsAppSender) SendTemplate(ctx context.Context, params whatsapp.SendTemplateParams) error {
	s.params = append(s.params, params)
	return s.err
}

func TestEmailChannel(t *testing.T) {
	t.Parallel()

	sender := &fakeEmailSender{}
	ch := notification.NewEmailChannel(sender)

	assert.Equal(t, "email", ch.Name())
	assert.True(t, ch.Applies(notification.Message{HTMLBody: "<p>hi</p>"}))
	assert.False(t, ch.Applies(notification.Message{Template: "tpl"}))

	msg := notification.Message{
		Recipient: notification.Recipient{Email: "asha@example.com"},
		Subject:   "Hello",
		HTMLBody:  "<p>hi</p>",
		Tag:       "credentials",
	}
	require.NoError(t, ch.Send(context.Background(), msg))
	require.Len(t, sender.params, 1)
	assert.Equal(t, "asha@example.com", sender.params[0].SendTo)
	assert.Equal(t, "Hello", sender.params[0].Subject)
	assert.Equal(t, "credentials", sender.params[0].Tag)

	err := ch.Send(context.Background(), notification.Message{HTMLBody: "<p>hi</p>"})
	assert.ErrorIs(t, err, notification.ErrMissingRecipient)
}

func TestWhatsAppChannel(t *testing.T) {
	t.Parallel()

	sender := &fakeWhatsAppSender{}
	ch := notification.NewWhatsAppChannel(sender)

	assert.Equal(t, "whatsapp", ch.Name())
	assert.True(t, ch.Applies(notification.Message{Template: "tpl"}))
	assert.False(t, ch.Applies(notification.Message{HTMLBody: "<p>hi</p>"}))

	msg := notification.Message{
		Recipient: notification.Recipient{Phone: "9876543210"},
		Template:  "aastha_chits_credentials",
		Params:    []string{"Asha", "USR1234"},
	}
	require.NoError(t, ch.Send(context.Background(), msg))
	require.Len(t, sender.params, 1)
	assert.Equal(t, "9876543210", sender.params[0].To)
	assert.Equal(t, "aastha_chits_credentials", sender.params[0].Template)

	err := ch.Send(context.Background(), notification.Message{Template: "tpl"})
	assert.ErrorIs(t, err, notification.ErrMissingRecipient)
}
