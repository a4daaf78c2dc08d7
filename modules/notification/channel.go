package notification

import (
	"context"
)

// Recipient identifies who a message is addressed to. A recipient may lack
// some contact details; channels that need a missing detail fail for that
// message without affecting the others.
type Recipient struct {
	Name  string
	Email string
	Phone string
}

// Message carries content for every channel it targets. The email channel
// uses Subject and HTMLBody, the WhatsApp channel uses Template and Params.
type Message struct {
	Recipient Recipient
	Subject   string
	HTMLBody  string
	Template  string   // Pre-approved WhatsApp template name
	Params    []string // Positional WhatsApp template parameters
	Tag       string   // Optional provider-side tag for analytics
}

// Channel delivers messages through a single medium.
type Channel interface {
	// Name identifies the channel in delivery outcomes ("email", "whatsapp").
	Name() string
	// Applies reports whether the message carries content for this channel.
	Applies(msg Message) bool
	// Send delivers the message. An error marks this channel as failed in
	// the outcome but never affects other channels.
	Send(ctx context.Context, msg Message) error
}
