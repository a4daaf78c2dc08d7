package enroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/modules/notification"
)

// ErrNotSent means the admin email could not be delivered on any channel.
var ErrNotSent = errors.New("enrollment email could not be delivered")

// Notifier delivers admin-directed emails.
type Notifier interface {
	Dispatch(ctx context.Context, msg notification.Message) notification.Outcome
}

// EnrollmentRequest is a prospect asking to join a plan.
type EnrollmentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Plan  string `json:"plan"`
}

func (r EnrollmentRequest) validate() error {
	errs := core.NewValidationError()
	if r.Name == "" {
		errs.Add("name", "name is required")
	}
	if r.Email == "" {
		errs.Add("email", "email is required")
	}
	if r.Phone == "" {
		errs.Add("phone", "phone is required")
	}
	if r.Plan == "" {
		errs.Add("plan", "plan is required")
	}
	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

// ContactForm is the public site's contact submission.
type ContactForm struct {
	Name          string `json:"firstName"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
}

func (f ContactForm) validate() error {
	errs := core.NewValidationError()
	if f.Name == "" {
		errs.Add("firstName", "name is required")
	}
	if f.Email == "" {
		errs.Add("email", "email is required")
	}
	if f.Message == "" {
		errs.Add("message", "message is required")
	}
	if !errs.IsEmpty() {
		return errs
	}
	return nil
}

// Service forwards enrollment requests and contact form submissions to the
// configured admin address.
type Service struct {
	nc         Notifier
	adminEmail string
	log        *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithServiceLogger sets the logger.
func WithServiceLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates an enroll service sending to adminEmail.
func NewService(nc Notifier, adminEmail string, opts ...Option) *Service {
	s := &Service{
		nc:         nc,
		adminEmail: adminEmail,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestEnrollment emails the admin about a prospect's plan interest.
func (s *Service) RequestEnrollment(ctx context.Context, req EnrollmentRequest) error {
	if err := req.validate(); err != nil {
		return err
	}

	msg, err := enrollmentMessage(s.admin(), req)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

// SubmitContactForm emails a contact form submission to the admin.
func (s *Service) SubmitContactForm(ctx context.Context, form ContactForm) error {
	if err := form.validate(); err != nil {
		return err
	}

	msg, err := contactMessage(s.admin(), form)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *Service) admin() notification.Recipient {
	return notification.Recipient{Name: "Admin", Email: s.adminEmail}
}

func (s *Service) send(ctx context.Context, msg notification.Message) error {
	outcome := s.nc.Dispatch(ctx, msg)
	if !outcome.AnyDelivered() {
		s.log.ErrorContext(ctx, "admin email delivery failed",
			slog.String("subject", msg.Subject), slog.Any("delivery", outcome.Delivered()))
		return fmt.Errorf("%w: %s", ErrNotSent, msg.Subject)
	}
	return nil
}
