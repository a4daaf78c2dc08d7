package credentials

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/modules/notification"
	"github.com/aasthachits/chitfund/modules/users"
	"github.com/aasthachits/chitfund/pkg/logger"
)

const (
	loginIDPrefix  = "USR"
	secretLength   = 8
	secretAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Notifier dispatches a credentials message and reports per-channel results.
type Notifier interface {
	Dispatch(ctx context.Context, msg notification.Message) notification.Outcome
}

// Issuer generates member credentials, persists the account and delivers
// the credentials over every configured channel.
type Issuer struct {
	users       users.Store
	notifier    Notifier
	loginURL    string
	maxAttempts int
	bcryptCost  int
	log         *slog.Logger

	// injectable for tests
	genLoginID func() (string, error)
	genSecret  func() (string, error)
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithMaxAttempts bounds identifier regeneration on collision.
func WithMaxAttempts(n int) Option {
	return func(i *Issuer) {
		if n > 0 {
			i.maxAttempts = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(i *Issuer) {
		if log != nil {
			i.log = log
		}
	}
}

// WithBcryptCost overrides the hash cost (tests use bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(i *Issuer) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			i.bcryptCost = cost
		}
	}
}

// WithGenerators replaces the identifier and secret generators. Tests use
// this to force collisions.
func WithGenerators(loginID, secret func() (string, error)) Option {
	return func(i *Issuer) {
		if loginID != nil {
			i.genLoginID = loginID
		}
		if secret != nil {
			i.genSecret = secret
		}
	}
}

// NewIssuer creates a credential issuer. loginURL is included in the
// delivered message so members know where to sign in.
func NewIssuer(store users.Store, notifier Notifier, loginURL string, opts ...Option) *Issuer {
	i := &Issuer{
		users:       store,
		notifier:    notifier,
		loginURL:    loginURL,
		maxAttempts: 5,
		bcryptCost:  bcrypt.DefaultCost,
		log:         slog.Default(),
		genLoginID:  randomLoginID,
		genSecret:   randomSecret,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IssueParams identifies the member to create credentials for.
type IssueParams struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	EnrolledPlans []string `json:"enrolledChits"`
}

func (p IssueParams) validate() error {
	errs := core.NewValidationError()
	if p.Name == "" {
		errs.Add("name", "name is required")
	}
	if p.Email == "" {
		errs.Add("email", "email is required")
	}
	if p.Phone == "" {
		errs.Add("phone", "phone is required")
	}
	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

// Issued is the issuance result. Secret is returned in clear text exactly
// once so the caller can show it as a fallback when a channel failed; only
// its hash is persisted.
type Issued struct {
	UserID   string          `json:"userId"`
	Secret   string          `json:"password"`
	Delivery map[string]bool `json:"delivery"`
}

// Issue creates the member account with generated credentials and delivers
// them. The account is persisted before any delivery attempt: a delivery
// failure never orphans the credentials, and a persistence failure never
// triggers a spurious message. Per-channel delivery failures are reported
// in Delivery, not as an error.
func (i *Issuer) Issue(ctx context.Context, params IssueParams) (*Issued, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if _, err := i.users.ByEmail(ctx, params.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	secret, err := i.genSecret()
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), i.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	var loginID string
	for attempt := 0; ; attempt++ {
		if attempt >= i.maxAttempts {
			return nil, fmt.Errorf("%w: %d attempts", ErrIdentifierExhausted, i.maxAttempts)
		}

		loginID, err = i.genLoginID()
		if err != nil {
			return nil, fmt.Errorf("generate identifier: %w", err)
		}

		err = i.users.Create(ctx, &users.User{
			ID:            uuid.NewString(),
			Name:          params.Name,
			Email:         params.Email,
			Phone:         params.Phone,
			LoginID:       loginID,
			PasswordHash:  string(hash),
			EnrolledPlans: params.EnrolledPlans,
		})
		if err == nil {
			break
		}
		if errors.Is(err, users.ErrLoginIDTaken) {
			continue // collision in the USR#### space, regenerate
		}
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("persist credentials: %w", err)
	}

	rcpt := notification.Recipient{Name: params.Name, Email: params.Email, Phone: params.Phone}
	msg, err := notification.CredentialsMessage(rcpt, loginID, secret, i.loginURL)
	if err != nil {
		// Credentials exist; report issuance with nothing delivered.
		i.log.LogAttrs(ctx, slog.LevelError, "failed to build credentials message",
			slog.String("login_id", loginID),
			logger.Error(err),
		)
		return &Issued{UserID: loginID, Secret: secret, Delivery: map[string]bool{}}, nil
	}

	outcome := i.notifier.Dispatch(ctx, msg)

	i.log.LogAttrs(ctx, slog.LevelInfo, "credentials issued",
		slog.String("login_id", loginID),
		slog.Any("delivery", outcome.Delivered()),
	)

	return &Issued{
		UserID:   loginID,
		Secret:   secret,
		Delivery: outcome.Delivered(),
	}, nil
}

// randomLoginID draws USR#### from 1000-9999, matching the space members
// already have printed on receipts.
func randomLoginID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", loginIDPrefix, 1000+n.Int64()), nil
}

func randomSecret() (string, error) {
	out := make([]byte, secretLength)
	max := big.NewInt(int64(len(secretAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = secretAlphabet[n.Int64()]
	}
	return string(out), nil
}
