package enroll

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
)

// Handler exposes the public enrollment and contact endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates the enroll HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the enrollment endpoints on an existing router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/enroll", h.enroll)
	r.Post("/contact", h.contact)
}

// Router mounts the enrollment endpoints on a fresh router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func (h *Handler) enroll(w http.ResponseWriter, r *http.Request) {
	var req EnrollmentRequest
	if err := core.BindJSON(r, &req); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	if err := h.svc.RequestEnrollment(r.Context(), req); err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("enrollment_requested", nil, nil))
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	var form ContactForm
	if err := core.BindJSON(r, &form); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	if err := h.svc.SubmitContactForm(r.Context(), form); err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("contact_form_sent", nil, nil))
}

func (h *Handler) errorResponse(err error) core.Response {
	var valErr core.ValidationError
	switch {
	case errors.As(err, &valErr):
		return core.JSONError(valErr)
	case errors.Is(err, ErrNotSent):
		return core.JSONError(core.ErrServiceUnavailable)
	default:
		return core.JSONError(err)
	}
}
