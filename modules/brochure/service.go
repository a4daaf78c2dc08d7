package brochure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/modules/notification"
	"github.com/aasthachits/chitfund/pkg/file"
	"github.com/aasthachits/chitfund/pkg/logger"
)

const maxBrochureSize = 20 << 20 // 20 MiB

// TokenIssuer mints and checks the short-lived download tokens embedded in
// secure brochure links.
type TokenIssuer interface {
	Issue() string
	Validate(token string) error
	TTL() time.Duration
}

// Notifier delivers the secure-link email.
type Notifier interface {
	Dispatch(ctx context.Context, msg notification.Message) notification.Outcome
}

// Service owns brochure upload, the secure-link flow, and tokened
// downloads. Links expire with their token; the brochure file itself is
// fetched fresh from storage on every download.
type Service struct {
	store   Store
	storage file.Storage
	tokens  TokenIssuer
	nc      Notifier
	baseURL string
	log     *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithServiceLogger sets the logger.
func WithServiceLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a brochure service. baseURL is the public origin the
// download link is built against, e.g. https://aasthachits.example.com.
func NewService(store Store, storage file.Storage, tokens TokenIssuer, nc Notifier, baseURL string, opts ...Option) *Service {
	s := &Service{
		store:   store,
		storage: storage,
		tokens:  tokens,
		nc:      nc,
		baseURL: baseURL,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload validates and stores a new brochure PDF and records it as the
// latest.
func (s *Service) Upload(ctx context.Context, fh *multipart.FileHeader) (*Brochure, error) {
	if fh == nil {
		return nil, core.ErrBadRequest
	}
	if err := file.ValidateSize(fh, maxBrochureSize); err != nil {
		return nil, err
	}
	if !file.IsPDF(fh) {
		return nil, ErrNotPDF
	}

	id := uuid.NewString()
	dest := path.Join("brochures", id+"_"+file.SanitizeFilename(fh.Filename))
	stored, err := s.storage.Save(ctx, fh, dest)
	if err != nil {
		return nil, fmt.Errorf("store brochure: %w", err)
	}

	b := &Brochure{
		ID:    id,
		Title: fh.Filename,
		Path:  stored.RelativePath,
	}
	if err := s.store.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("save brochure record: %w", err)
	}
	return b, nil
}

// Latest returns the most recently uploaded brochure.
func (s *Service) Latest(ctx context.Context) (*Brochure, error) {
	return s.store.Latest(ctx)
}

// SendLink emails a tokened download link. The token is multi-use until it
// expires, so a recipient can download the brochure more than once from
// the same email.
func (s *Service) SendLink(ctx context.Context, name, email string) error {
	errs := core.NewValidationError()
	if name == "" {
		errs.Add("name", "name is required")
	}
	if email == "" {
		errs.Add("email", "email is required")
	}
	if !errs.IsEmpty() {
		return errs
	}

	// The link must point at an existing brochure.
	if _, err := s.store.Latest(ctx); err != nil {
		return err
	}

	token := s.tokens.Issue()
	link := fmt.Sprintf("%s/api/download-brochure?token=%s", s.baseURL, url.QueryEscape(token))

	msg, err := notification.BrochureLinkMessage(notification.Recipient{Name: name, Email: email}, link, s.tokens.TTL())
	if err != nil {
		return fmt.Errorf("build brochure email: %w", err)
	}

	outcome := s.nc.Dispatch(ctx, msg)
	if !outcome.AnyDelivered() {
		s.log.ErrorContext(ctx, "brochure link delivery failed",
			slog.String("email", email), slog.Any("delivery", outcome.Delivered()))
		return ErrLinkNotSent
	}
	return nil
}

// Download validates the token and opens the latest brochure for
// streaming. Token errors pass through unchanged so the handler can
// distinguish an unknown token from an expired link.
func (s *Service) Download(ctx context.Context, token string) (io.ReadCloser, *Brochure, error) {
	if err := s.tokens.Validate(token); err != nil {
		return nil, nil, err
	}

	b, err := s.store.Latest(ctx)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(ctx, b.Path)
	if err != nil {
		s.log.ErrorContext(ctx, "open brochure file",
			slog.String("path", b.Path), logger.Error(err))
		return nil, nil, fmt.Errorf("open brochure: %w", err)
	}
	return rc, b, nil
}
