package users

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/pkg/logger"
)

// PlanSummary is the slice of a chit plan the member dashboard shows.
type PlanSummary struct {
	ID                  string  `json:"id"`
	PlanName            string  `json:"planName"`
	MonthlySubscription float64 `json:"monthlySubscription"`
	TotalAmount         float64 `json:"totalAmount"`
	DurationMonths      int     `json:"duration"`
}

// PlanDirectory resolves plan ids to summaries for the dashboard.
type PlanDirectory interface {
	Summaries(ctx context.Context, ids []string) ([]PlanSummary, error)
}

// TransactionRecord is a member-visible transaction row.
type TransactionRecord struct {
	ID       string    `json:"id"`
	PlanID   string    `json:"planId"`
	PlanName string    `json:"planName"`
	Amount   float64   `json:"amount"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
}

// TransactionLog lists a member's transactions for the dashboard.
type TransactionLog interface {
	ForUser(ctx context.Context, userID string) ([]TransactionRecord, error)
	PendingForUser(ctx context.Context, userID string) ([]TransactionRecord, error)
}

// Dashboard aggregates everything the member home screen needs.
type Dashboard struct {
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	Phone               string              `json:"phone"`
	ProfilePic          string              `json:"profilePic"`
	EnrolledPlans       []PlanSummary       `json:"enrolledChits"`
	Transactions        []TransactionRecord `json:"transactions"`
	PendingTransactions []TransactionRecord `json:"pendingTransactions"`
}

// Service implements member account operations on top of a Store.
type Service struct {
	store      Store
	plans      PlanDirectory
	txs        TransactionLog
	log        *slog.Logger
	bcryptCost int
}

// Option configures a Service.
type Option func(*Service)

// WithPlanDirectory wires the plan lookup used by Dashboard.
func WithPlanDirectory(plans PlanDirectory) Option {
	return func(s *Service) { s.plans = plans }
}

// WithTransactionLog wires the transaction lookup used by Dashboard.
func WithTransactionLog(txs TransactionLog) Option {
	return func(s *Service) { s.txs = txs }
}

// WithServiceLogger sets the logger.
func WithServiceLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBcryptCost overrides the hash cost (tests use bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// NewService creates a user service.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		log:        slog.Default(),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateParams carries the fields an admin supplies when adding a member.
type CreateParams struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	LoginID       string   `json:"userId"`
	Password      string   `json:"password"`
	EnrolledPlans []string `json:"enrolledChits"`
}

func (p CreateParams) validate() error {
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
	if p.Password != "" && len(p.Password) < 6 {
		errs.Add("password", "password must be at least 6 characters")
	}
	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

// Create persists a new member. The password is hashed before storage;
// it is never persisted or logged in clear text.
func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	user := &User{
		ID:            uuid.NewString(),
		Name:          params.Name,
		Email:         params.Email,
		Phone:         params.Phone,
		LoginID:       params.LoginID,
		EnrolledPlans: params.EnrolledPlans,
	}

	if params.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "user created",
		logger.UserID(user.ID),
		slog.String("login_id", user.LoginID),
	)
	return user, nil
}

// Login verifies a member's credentials and records the login time.
// The same error is returned for an unknown login id and a wrong password.
func (s *Service) Login(ctx context.Context, loginID, password string) (*User, error) {
	user, err := s.store.ByLoginID(ctx, loginID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.store.RecordLogin(ctx, user.ID, now); err != nil {
		// Login still succeeds; losing the timestamp is not worth failing it.
		s.log.LogAttrs(ctx, slog.LevelWarn, "failed to record login time",
			logger.UserID(user.ID),
			logger.Error(err),
		)
	}
	user.LastLogin = &now
	user.IsActive = true

	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	if len(next) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return err
	}

	return s.store.UpdatePassword(ctx, id, string(hash))
}

// UpdateParams carries the mutable member fields.
type UpdateParams struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	EnrolledPlans []string `json:"enrolledChits"`
}

// Update applies non-empty fields; the enrolled plan list is replaced.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*User, error) {
	user, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != "" {
		user.Name = params.Name
	}
	if params.Email != "" {
		user.Email = params.Email
	}
	if params.Phone != "" {
		user.Phone = params.Phone
	}
	user.EnrolledPlans = params.EnrolledPlans

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns a single member.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.store.ByID(ctx, id)
}

// List returns all members, newest first.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// EnrolledIn returns the members enrolled in the given chit plan.
func (s *Service) EnrolledIn(ctx context.Context, planID string) ([]User, error) {
	return s.store.ByEnrolledPlan(ctx, planID)
}

// Dashboard assembles the member home screen: profile, enrolled plans and
// transaction history. Missing plan or transaction wiring degrades to empty
// sections rather than failing.
func (s *Service) Dashboard(ctx context.Context, id string) (*Dashboard, error) {
	user, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		Name:                user.Name,
		Email:               user.Email,
		Phone:               user.Phone,
		ProfilePic:          user.ProfilePic,
		EnrolledPlans:       []PlanSummary{},
		Transactions:        []TransactionRecord{},
		PendingTransactions: []TransactionRecord{},
	}

	if s.plans != nil && len(user.EnrolledPlans) > 0 {
		summaries, err := s.plans.Summaries(ctx, user.EnrolledPlans)
		if err != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "failed to load enrolled plans",
				logger.UserID(id), logger.Error(err))
		} else {
			dash.EnrolledPlans = summaries
		}
	}

	if s.txs != nil {
		if all, err := s.txs.ForUser(ctx, id); err == nil {
			dash.Transactions = all
		} else {
			s.log.LogAttrs(ctx, slog.LevelWarn, "failed to load transactions",
				logger.UserID(id), logger.Error(err))
		}
		if pending, err := s.txs.PendingForUser(ctx, id); err == nil {
			dash.PendingTransactions = pending
		}
	}

	return dash, nil
}
