package credentials_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aasthachits/chitfund/modules/credentials"
	"github.com/aasthachits/chitfund/modules/notification"
	"github.com/aasthachits/chitfund/modules/users"
)

// fakeNotifier records dispatched messages and returns a fixed outcome.
type fakeNotifier struct {
	outcome  notification.Outcome
	messages []notification.Message
}

func (n *fakeNotifier) Dispatch(ctx context.Context, msg notification.Message) notification.Outcome {
	n.messages = append(n.messages, msg)
	return n.outcome
}

func bothDelivered() notification.Outcome {
	return notification.Outcome{
		"email":    {Delivered: true},
		"whatsapp": {Delivered: true},
	}
}

func newIssuer(t *testing.T, store users.Store, notifier credentials.Notifier, opts ...credentials.Option) *credentials.Issuer {
	t.Helper()

	base := []credentials.Option{
		credentials.WithBcryptCost(bcrypt.MinCost),
		credentials.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return credentials.NewIssuer(store, notifier, "https://aasthachits.example.com/login", append(base, opts...)...)
}

func asha() credentials.IssueParams {
	return credentials.IssueParams{
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "9876543210",
	}
}

func TestIssuer_Issue(t *testing.T) {
	t.Parallel()

	t.Run("persists then delivers", func(t *testing.T) {
		t.Parallel()

		store := users.NewMemoryStore()
		notifier := &fakeNotifier{outcome: bothDelivered()}
		issuer := newIssuer(t, store, notifier)

		issued, err := issuer.Issue(context.Background(), asha())
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^USR\d{4}$`), issued.UserID)
		assert.Len(t, issued.Secret, 8)
		assert.Equal(t, map[string]bool{"email": true, "whatsapp": true}, issued.Delivery)

		// Persisted with a hash, not the clear secret
		user, err := store.ByLoginID(context.Background(), issued.UserID)
		require.NoError(t, err)
		assert.NotEqual(t, issued.Secret, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(issued.Secret)))

		// Delivered message carries the credentials
		require.Len(t, notifier.messages, 1)
		msg := notifier.messages[0]
		assert.Contains(t, msg.HTMLBody, issued.UserID)
		assert.Equal(t, "aastha_chits_credentials", msg.Template)
	})

	t.Run("partial delivery failure still succeeds", func(t *testing.T) {
		t.Parallel()

		store := users.NewMemoryStore()
		notifier := &fakeNotifier{outcome: notification.Outcome{
			"email":    {Delivered: true},
			"whatsapp": {Delivered: false, Err: errors.New("api down")},
		}}
		issuer := newIssuer(t, store, notifier)

		issued, err := issuer.Issue(context.Background(), asha())
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"email": true, "whatsapp": false}, issued.Delivery)

		// Account exists despite the failed channel
		_, err = store.ByLoginID(context.Background(), issued.UserID)
		assert.NoError(t, err)
	})

	t.Run("existing user", func(t *testing.T) {
		t.Parallel()

		store := users.NewMemoryStore()
		notifier := &fakeNotifier{outcome: bothDelivered()}
		issuer := newIssuer(t, store, notifier)

		_, err := issuer.Issue(context.Background(), asha())
		require.NoError(t, err)

		_, err = issuer.Issue(context.Background(), asha())
		assert.ErrorIs(t, err, credentials.ErrUserExists)
		assert.Len(t, notifier.messages, 1) // no delivery for the rejected request
	})

	t.Run("retries colliding identifiers", func(t *testing.T) {
		t.Parallel()

		store := users.NewMemoryStore()
		notifier := &fakeNotifier{outcome: bothDelivered()}

		ids := []string{"USR1111", "USR1111", "USR2222"}
		calls := 0
		issuer := newIssuer(t, store, notifier, credentials.WithGenerators(
			func() (string, error) {
				id := ids[calls%len(ids)]
				calls++
				return id, nil
			},
			nil,
		))

		first, err := issuer.Issue(context.Background(), asha())
		require.NoError(t, err)
		assert.Equal(t, "USR1111", first.UserID)

		second, err := issuer.Issue(context.Background(), credentials.IssueParams{
			Name:  "Ravi",
			Email: "ravi@example.com",
			Phone: "9123456780",
		})
		require.NoError(t, err)
		assert.Equal(t, "USR2222", second.UserID) // USR1111 collided, regenerated
	})

	t.Run("identifier space exhausted", func(t *testing.T) {
		t.Parallel()

		store := users.NewMemoryStore()
		notifier := &fakeNotifier{outcome: bothDelivered()}
		issuer := newIssuer(t, store, notifier,
			credentials.WithMaxAttempts(3),
			credentials.WithGenerators(func() (string, error) { return "USR1111", nil }, nil),
		)

		_, err := issuer.Issue(context.Background(), asha())
		require.NoError(t, err)

		_, err = issuer.Issue(context.Background(), credentials.IssueParams{
			Name:  "Ravi",
			Email: "ravi@example.com",
			Phone: "9123456780",
		})
		assert.ErrorIs(t, err, credentials.ErrIdentifierExhausted)
		assert.Len(t, notifier.messages, 1) // exhaustion never triggers delivery
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		store := users.NewMemoryStore()
		notifier := &fakeNotifier{outcome: bothDelivered()}
		issuer := newIssuer(t, store, notifier)

		for i, params := range []credentials.IssueParams{
			{},
			{Name: "Asha", Phone: "9876543210"},
			{Name: "Asha", Email: "asha@example.com"},
		} {
			_, err := issuer.Issue(context.Background(), params)
			assert.Error(t, err, fmt.Sprintf("case %d", i))
		}
	})
}
