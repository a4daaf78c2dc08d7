package brochure

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/pkg/accesstoken"
	"github.com/aasthachits/chitfund/pkg/file"
)

const maxUploadMemory = 20 << 20

var (
	errInvalidToken = core.NewHTTPError(http.StatusForbidden, "invalid_token")
	errLinkExpired  = core.NewHTTPError(http.StatusForbidden, "link_expired")
)

// Handler exposes the brochure endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates the brochure HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the brochure endpoints on an existing router. Paths
// match the public API the frontend already uses.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/upload-brochure", h.upload)
	r.Get("/brochure", h.latest)
	r.Post("/send-brochure", h.sendLink)
	r.Get("/download-brochure", h.download)
}

// Router mounts the brochure endpoints on a fresh router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	b, err := h.svc.Upload(r.Context(), files[0])
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSONStatus(http.StatusCreated, "brochure_uploaded", b, nil))
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Latest(r.Context())
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("brochure", b, nil))
}

func (h *Handler) sendLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := core.BindJSON(r, &req); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	if err := h.svc.SendLink(r.Context(), req.Name, req.Email); err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("brochure_link_sent", nil, nil))
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	rc, b, err := h.svc.Download(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.SanitizeFilename(b.Title)))
	_, _ = io.Copy(w, rc)
}

func (h *Handler) errorResponse(err error) core.Response {
	var valErr core.ValidationError
	switch {
	case errors.As(err, &valErr):
		return core.JSONError(valErr)
	case errors.Is(err, accesstoken.ErrTokenExpired):
		return core.JSONError(errLinkExpired)
	case errors.Is(err, accesstoken.ErrInvalidToken):
		return core.JSONError(errInvalidToken)
	case errors.Is(err, ErrNoBrochure):
		return core.JSONError(core.ErrNotFound)
	case errors.Is(err, ErrNotPDF):
		return core.JSONError(core.ErrUnsupportedMediaType)
	case errors.Is(err, file.ErrFileTooLarge):
		return core.JSONError(core.ErrRequestEntityTooLarge)
	case errors.Is(err, ErrLinkNotSent):
		return core.JSONError(core.ErrServiceUnavailable)
	default:
		return core.JSONError(err)
	}
}
