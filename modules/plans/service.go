package plans

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"

	"github.com/google/uuid"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/pkg/file"
	"github.com/aasthachits/chitfund/pkg/logger"
)

const maxImageSize = 5 << 20 // 5 MiB

// Member is a plan member as returned by PlanUsers.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MemberDirectory lists the users enrolled in a plan.
type MemberDirectory interface {
	EnrolledIn(ctx context.Context, planID string) ([]Member, error)
}

// Publisher pushes live plan events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, room string, payload any) error
	PublishGlobal(ctx context.Context, payload any) error
}

// EventType labels a live plan event.
type EventType string

const (
	EventUpdated EventType = "plan:updated"
	EventDeleted EventType = "plan:deleted"
)

// Event is the payload fanned out to plan room subscribers.
type Event struct {
	Type EventType `json:"type"`
	Plan Plan      `json:"plan"`
}

// Service owns chit plan CRUD. Plan images go through the configured
// storage backend; updates are broadcast to the plan's room and the
// global room, fire-and-forget.
type Service struct {
	store     Store
	storage   file.Storage
	members   MemberDirectory
	publisher Publisher
	log       *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithStorage wires the backend for plan images.
func WithStorage(storage file.Storage) Option {
	return func(s *Service) { s.storage = storage }
}

// WithMemberDirectory wires enrolled-member lookup.
func WithMemberDirectory(members MemberDirectory) Option {
	return func(s *Service) { s.members = members }
}

// WithPublisher wires live event fan-out.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithServiceLogger sets the logger.
func WithServiceLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a plan service backed by the given store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Params carries a plan's editable fields. On update, nil pointers leave
// the stored value untouched.
type Params struct {
	Name                *string  `json:"planName"`
	MonthlySubscription *float64 `json:"monthlySubscription"`
	MinBidding          *float64 `json:"minBidding"`
	MaxBidding          *float64 `json:"maxBidding"`
	DurationMonths      *int     `json:"duration"`
	TotalAmount         *float64 `json:"totalAmount"`
}

func (p Params) validateForCreate() error {
	errs := core.NewValidationError()
	if p.Name == nil || *p.Name == "" {
		errs.Add("planName", "plan name is required")
	}
	if p.MonthlySubscription == nil || *p.MonthlySubscription <= 0 {
		errs.Add("monthlySubscription", "monthly subscription must be positive")
	}
	if p.DurationMonths == nil || *p.DurationMonths <= 0 {
		errs.Add("duration", "duration must be positive")
	}
	if p.TotalAmount == nil || *p.TotalAmount <= 0 {
		errs.Add("totalAmount", "total amount must be positive")
	}
	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

func (p Params) apply(plan *Plan) {
	if p.Name != nil {
		plan.Name = *p.Name
	}
	if p.MonthlySubscription != nil {
		plan.MonthlySubscription = *p.MonthlySubscription
	}
	if p.MinBidding != nil {
		plan.MinBidding = *p.MinBidding
	}
	if p.MaxBidding != nil {
		plan.MaxBidding = *p.MaxBidding
	}
	if p.DurationMonths != nil {
		plan.DurationMonths = *p.DurationMonths
	}
	if p.TotalAmount != nil {
		plan.TotalAmount = *p.TotalAmount
	}
}

// Create persists a new plan, storing the optional image first.
func (s *Service) Create(ctx context.Context, params Params, image *multipart.FileHeader) (*Plan, error) {
	if err := params.validateForCreate(); err != nil {
		return nil, err
	}

	plan := &Plan{ID: uuid.NewString()}
	params.apply(plan)

	if image != nil {
		stored, err := s.saveImage(ctx, plan.ID, image)
		if err != nil {
			return nil, err
		}
		plan.Image = stored
	}

	if err := s.store.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

// Update modifies a plan's fields and optionally replaces its image, then
// broadcasts the change to subscribers.
func (s *Service) Update(ctx context.Context, id string, params Params, image *multipart.FileHeader) (*Plan, error) {
	plan, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	params.apply(plan)

	if image != nil {
		stored, err := s.saveImage(ctx, plan.ID, image)
		if err != nil {
			return nil, err
		}
		if plan.Image != "" && plan.Image != stored {
			s.removeImage(ctx, plan.Image)
		}
		plan.Image = stored
	}

	if err := s.store.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	s.broadcast(ctx, EventUpdated, *plan)
	return plan, nil
}

// Delete removes a plan and its stored image.
func (s *Service) Delete(ctx context.Context, id string) error {
	plan, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if plan.Image != "" {
		s.removeImage(ctx, plan.Image)
	}

	s.broadcast(ctx, EventDeleted, *plan)
	return nil
}

// Get returns a plan by id.
func (s *Service) Get(ctx context.Context, id string) (*Plan, error) {
	return s.store.ByID(ctx, id)
}

// List returns all plans, newest first.
func (s *Service) List(ctx context.Context) ([]Plan, error) {
	return s.store.List(ctx)
}

// PlanUsers returns the members enrolled in the plan. The plan must exist.
func (s *Service) PlanUsers(ctx context.Context, id string) ([]Member, error) {
	if _, err := s.store.ByID(ctx, id); err != nil {
		return nil, err
	}
	if s.members == nil {
		return []Member{}, nil
	}
	return s.members.EnrolledIn(ctx, id)
}

// ImageURL resolves a stored image path to its public URL.
func (s *Service) ImageURL(imagePath string) string {
	if imagePath == "" || s.storage == nil {
		return ""
	}
	return s.storage.URL(imagePath)
}

func (s *Service) saveImage(ctx context.Context, planID string, fh *multipart.FileHeader) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("store plan image: %w", file.ErrStorageNotConfigured)
	}
	if err := file.ValidateSize(fh, maxImageSize); err != nil {
		return "", err
	}
	if err := file.ValidateMIMEType(fh, "image/png", "image/jpeg"); err != nil {
		return "", ErrInvalidImage
	}

	dest := path.Join("chitplans", planID+"_"+file.SanitizeFilename(fh.Filename))
	stored, err := s.storage.Save(ctx, fh, dest)
	if err != nil {
		return "", fmt.Errorf("store plan image: %w", err)
	}
	return stored.RelativePath, nil
}

func (s *Service) removeImage(ctx context.Context, imagePath string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, imagePath); err != nil {
		s.log.WarnContext(ctx, "remove old plan image",
			slog.String("path", imagePath), logger.Error(err))
	}
}

func (s *Service) broadcast(ctx context.Context, typ EventType, plan Plan) {
	if s.publisher == nil {
		return
	}

	event := Event{Type: typ, Plan: plan}
	if err := s.publisher.Publish(ctx, plan.ID, event); err != nil {
		s.log.WarnContext(ctx, "publish plan event",
			logger.PlanID(plan.ID), logger.Room(plan.ID), logger.Error(err))
	}
	if err := s.publisher.PublishGlobal(ctx, event); err != nil {
		s.log.WarnContext(ctx, "publish global plan event",
			logger.PlanID(plan.ID), logger.Error(err))
	}
}
