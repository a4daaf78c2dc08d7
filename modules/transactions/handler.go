package transactions

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
)

// Handler exposes transaction endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates the transactions HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Router mounts the transaction endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.transition)
	r.Delete("/{id}", h.delete)
	r.Get("/users/{userId}", h.forUser)

	return r
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params CreateParams
	if err := core.BindJSON(r, &params); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	result, err := h.svc.Create(r.Context(), params)
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}

	core.Render(w, r, core.JSONStatus(http.StatusCreated, "transaction_created", result, nil))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}
	core.Render(w, r, core.JSON("transactions", list, map[string]any{"total": len(list)}))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("transaction", tx, nil))
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status Status `json:"status"`
	}
	if err := core.BindJSON(r, &req); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	result, err := h.svc.Transition(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("transaction_updated", result, nil))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("transaction_deleted", nil, nil))
}

func (h *Handler) forUser(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	list, err := h.svc.ForUser(r.Context(), chi.URLParam(r, "userId"), status)
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("transactions", list, map[string]any{"total": len(list)}))
}

func (h *Handler) errorResponse(err error) core.Response {
	var valErr core.ValidationError
	switch {
	case errors.As(err, &valErr):
		return core.JSONError(valErr)
	case errors.Is(err, ErrNotFound):
		return core.JSONError(core.ErrNotFound)
	case errors.Is(err, ErrInvalidStatus):
		return core.JSONError(core.ErrUnprocessableEntity)
	case errors.Is(err, ErrInvalidTransition):
		return core.JSONError(core.ErrConflict)
	default:
		return core.JSONError(err)
	}
}
