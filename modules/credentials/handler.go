package credentials

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
)

// Handler exposes the credential issuing endpoint.
type Handler struct {
	issuer *Issuer
}

// NewHandler creates the credentials HTTP handler.
func NewHandler(issuer *Issuer) *Handler {
	return &Handler{issuer: issuer}
}

// Router mounts the credentials endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/generate", h.generate)
	return r
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var params IssueParams
	if err := core.BindJSON(r, &params); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	issued, err := h.issuer.Issue(r.Context(), params)
	if err != nil {
		var valErr core.ValidationError
		switch {
		case errors.As(err, &valErr):
			core.Render(w, r, core.JSONError(valErr))
		case errors.Is(err, ErrUserExists):
			core.Render(w, r, core.JSONError(core.ErrConflict))
		default:
			core.Render(w, r, core.JSONError(err))
		}
		return
	}

	core.Render(w, r, core.JSONStatus(http.StatusCreated, "credentials_generated", issued, nil))
}
