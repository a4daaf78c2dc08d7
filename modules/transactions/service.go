package transactions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/modules/notification"
	"github.com/aasthachits/chitfund/pkg/logger"
	"github.com/aasthachits/chitfund/pkg/statemachine"
)

// Member is the slice of a user the service needs for notifications.
type Member struct {
	Name  string
	Email string
	Phone string
}

// UserDirectory resolves a member's contact details.
type UserDirectory interface {
	Member(ctx context.Context, userID string) (Member, error)
}

// PlanDirectory resolves a chit plan's display name.
type PlanDirectory interface {
	PlanName(ctx context.Context, planID string) (string, error)
}

// Notifier delivers transaction emails. Outcomes are advisory only.
type Notifier interface {
	Dispatch(ctx context.Context, msg notification.Message) notification.Outcome
}

// Publisher pushes live events to plan rooms and the global room.
type Publisher interface {
	Publish(ctx context.Context, room string, payload any) error
	PublishGlobal(ctx context.Context, payload any) error
}

// EventType labels a live transaction event.
type EventType string

const (
	EventCreated       EventType = "transaction:created"
	EventStatusChanged EventType = "transaction:status"
)

// Event is the payload fanned out to room subscribers.
type Event struct {
	Type        EventType   `json:"type"`
	Transaction Transaction `json:"transaction"`
}

// Result reports a lifecycle operation together with its best-effort
// notification outcome. Notified is false when any channel failed; the
// status change itself has already been persisted either way.
type Result struct {
	Transaction Transaction     `json:"transaction"`
	Notified    bool            `json:"notified"`
	Delivery    map[string]bool `json:"delivery,omitempty"`
}

// Service owns the transaction lifecycle. Status moves through a shared
// transition chart; a keyed mutex serializes the read-validate-write per
// transaction id, and notification plus broadcast run after the lock is
// released.
type Service struct {
	store     Store
	users     UserDirectory
	plans     PlanDirectory
	notifier  Notifier
	publisher Publisher
	chart     statemachine.Chart
	locks     *keyedMutex
	log       *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithUserDirectory wires member lookup for notification recipients.
func WithUserDirectory(users UserDirectory) Option {
	return func(s *Service) { s.users = users }
}

// WithPlanDirectory wires plan name lookup for notification content.
func WithPlanDirectory(plans PlanDirectory) Option {
	return func(s *Service) { s.plans = plans }
}

// WithNotifier wires best-effort email delivery on lifecycle changes.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithPublisher wires live event fan-out to plan rooms.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithServiceLogger sets the logger.
func WithServiceLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a transaction service backed by the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		chart: newLifecycleChart(),
		locks: newKeyedMutex(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateParams holds the input for a new transaction.
type CreateParams struct {
	UserID string    `json:"userId"`
	PlanID string    `json:"chitPlanId"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

func (p CreateParams) validate() error {
	errs := core.NewValidationError()
	if p.UserID == "" {
		errs.Add("userId", "user is required")
	}
	if p.PlanID == "" {
		errs.Add("chitPlanId", "chit plan is required")
	}
	if p.Amount <= 0 {
		errs.Add("amount", "amount must be positive")
	}
	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

// Create records a new Pending transaction, then notifies the member and
// broadcasts the event. Delivery and broadcast failures never fail the
// create.
func (s *Service) Create(ctx context.Context, params CreateParams) (Result, error) {
	if err := params.validate(); err != nil {
		return Result{}, err
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx := &Transaction{
		ID:     uuid.NewString(),
		UserID: params.UserID,
		PlanID: params.PlanID,
		Amount: params.Amount,
		Status: StatusPending,
		Date:   date,
	}
	if err := s.store.Create(ctx, tx); err != nil {
		return Result{}, fmt.Errorf("create transaction: %w", err)
	}

	notified, delivery := s.notify(ctx, *tx)
	s.broadcast(ctx, EventCreated, *tx)

	return Result{Transaction: *tx, Notified: notified, Delivery: delivery}, nil
}

// Transition moves a transaction from Pending to one of the terminal
// states. Moves out of a terminal state are rejected, as is a transition
// to the status the transaction already holds. Per-id serialization means
// concurrent calls observe each other's writes: the first wins, the rest
// fail with ErrInvalidTransition.
func (s *Service) Transition(ctx context.Context, id string, target Status) (Result, error) {
	if !target.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	unlock := s.locks.Lock(id)

	tx, err := s.store.ByID(ctx, id)
	if err != nil {
		unlock()
		return Result{}, err
	}

	if tx.Status == target {
		unlock()
		return Result{}, fmt.Errorf("%w: transaction is already %s", ErrInvalidTransition, target)
	}

	event, ok := eventForTarget[target]
	if !ok {
		// Only Pending has no driving event; moving back to it is never
		// allowed.
		unlock()
		return Result{}, fmt.Errorf("%w: cannot return to %s", ErrInvalidTransition, target)
	}

	if _, err := s.chart.Fire(ctx, tx.Status.state(), event, tx); err != nil {
		unlock()
		if statemachine.IsNoTransitionAvailableError(err) || statemachine.IsTransitionRejectedError(err) {
			return Result{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, tx.Status, target)
		}
		return Result{}, fmt.Errorf("fire transition: %w", err)
	}

	if err := s.store.UpdateStatus(ctx, id, target); err != nil {
		unlock()
		return Result{}, fmt.Errorf("persist status: %w", err)
	}
	tx.Status = target
	tx.UpdatedAt = time.Now()

	unlock()

	notified, delivery := s.notify(ctx, *tx)
	s.broadcast(ctx, EventStatusChanged, *tx)

	return Result{Transaction: *tx, Notified: notified, Delivery: delivery}, nil
}

// Get returns a transaction by id.
func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	tx, err := s.store.ByID(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	return *tx, nil
}

// Delete removes a transaction regardless of its status.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// List returns all transactions, newest first.
func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.store.List(ctx)
}

// ForUser returns a member's transactions, optionally filtered by status.
func (s *Service) ForUser(ctx context.Context, userID string, status Status) ([]Transaction, error) {
	if status == "" {
		return s.store.ForUser(ctx, userID)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.ForUserWithStatus(ctx, userID, status)
}

// notify emails the member about the transaction's current status. Every
// failure path logs and degrades; the lifecycle change stands regardless.
func (s *Service) notify(ctx context.Context, tx Transaction) (bool, map[string]bool) {
	if s.notifier == nil || s.users == nil {
		return false, nil
	}

	member, err := s.users.Member(ctx, tx.UserID)
	if err != nil {
		s.log.WarnContext(ctx, "resolve transaction recipient",
			logger.TransactionID(tx.ID), logger.UserID(tx.UserID), logger.Error(err))
		return false, nil
	}

	planName := tx.PlanID
	if s.plans != nil {
		if name, err := s.plans.PlanName(ctx, tx.PlanID); err == nil {
			planName = name
		} else {
			s.log.WarnContext(ctx, "resolve transaction plan name",
				logger.TransactionID(tx.ID), logger.PlanID(tx.PlanID), logger.Error(err))
		}
	}

	msg, err := notification.TransactionMessage(notification.Recipient{
		Name:  member.Name,
		Email: member.Email,
		Phone: member.Phone,
	}, planName, tx.Amount, string(tx.Status), tx.Date)
	if err != nil {
		s.log.ErrorContext(ctx, "build transaction message",
			logger.TransactionID(tx.ID), logger.Error(err))
		return false, nil
	}

	outcome := s.notifier.Dispatch(ctx, msg)
	delivery := outcome.Delivered()
	if !outcome.AllDelivered() {
		s.log.WarnContext(ctx, "transaction notification incomplete",
			logger.TransactionID(tx.ID), slog.Any("delivery", delivery))
	}
	return outcome.AllDelivered(), delivery
}

// broadcast publishes the event to the transaction's plan room and the
// global room. Fire-and-forget.
func (s *Service) broadcast(ctx context.Context, typ EventType, tx Transaction) {
	if s.publisher == nil {
		return
	}

	event := Event{Type: typ, Transaction: tx}
	if err := s.publisher.Publish(ctx, tx.PlanID, event); err != nil {
		s.log.WarnContext(ctx, "publish transaction event",
			logger.TransactionID(tx.ID), logger.Room(tx.PlanID), logger.Error(err))
	}
	if err := s.publisher.PublishGlobal(ctx, event); err != nil {
		s.log.WarnContext(ctx, "publish global transaction event",
			logger.TransactionID(tx.ID), logger.Error(err))
	}
}
