package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/aasthachits/chitfund/pkg/async"
	"github.com/aasthachits/chitfund/pkg/logger"
)

// DeliveryResult records the outcome of one channel's delivery attempt.
type DeliveryResult struct {
	Delivered bool
	Err       error
}

// Outcome maps channel name to its delivery result. A failed channel never
// fails the operation that triggered the notification; callers inspect the
// outcome to report partial delivery.
type Outcome map[string]DeliveryResult

// Delivered returns the channel -> delivered flags in the shape API
// responses expose, e.g. {"email": true, "whatsapp": false}.
func (o Outcome) Delivered() map[string]bool {
	flags := make(map[string]bool, len(o))
	for name, res := range o {
		flags[name] = res.Delivered
	}
	return flags
}

// AllDelivered reports whether every attempted channel succeeded.
func (o Outcome) AllDelivered() bool {
	for _, res := range o {
		if !res.Delivered {
			return false
		}
	}
	return true
}

// AnyDelivered reports whether at least one channel succeeded.
func (o Outcome) AnyDelivered() bool {
	for _, res := range o {
		if res.Delivered {
			return true
		}
	}
	return false
}

// Dispatcher fans a message out to every applicable channel concurrently.
// Channels are independent: one failing or timing out does not stop the
// others, and dispatch itself never returns an error.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	log      *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTimeout bounds how long Dispatch waits for each channel.
func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for failed deliveries.
func WithLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(channels []Channel, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		channels: channels,
		timeout:  20 * time.Second,
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dispatch sends the message through every channel that applies to it and
// returns the per-channel outcome. Channels run concurrently; each is given
// at most the configured timeout.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Outcome {
	type attempt struct {
		name   string
		future *async.Future[struct{}]
	}

	attempts := make([]attempt, 0, len(d.channels))
	for _, ch := range d.channels {
		if !ch.Applies(msg) {
			continue
		}
		attempts = append(attempts, attempt{
			name: ch.Name(),
			future: async.Async(ctx, ch, func(ctx context.Context, ch Channel) (struct{}, error) {
				return struct{}{}, ch.Send(ctx, msg)
			}),
		})
	}

	outcome := make(Outcome, len(attempts))
	for _, a := range attempts {
		_, err := a.future.AwaitWithTimeout(d.timeout)
		if err != nil {
			d.log.LogAttrs(ctx, slog.LevelWarn, "notification delivery failed",
				logger.Channel(a.name),
				logger.Error(err),
			)
		}
		outcome[a.name] = DeliveryResult{
			Delivered: err == nil,
			Err:       err,
		}
	}

	return outcome
}
