package users

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
)

// Handler exposes member account endpoints. Authentication middleware is
// mounted by the caller; handlers only implement the operations.
type Handler struct {
	svc *Service
}

// NewHandler creates the users HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Router mounts the users endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.login)
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Put("/{id}/password", h.changePassword)
	r.Get("/{id}/dashboard", h.dashboard)

	return r
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoginID  string `json:"userId"`
		Password string `json:"password"`
	}
	if err := core.BindJSON(r, &req); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	user, err := h.svc.Login(r.Context(), req.LoginID, req.Password)
	if err != nil {
		core.Render(w, r, core.JSONError(core.ErrUnauthorized))
		return
	}

	core.Render(w, r, core.JSON("login", user, nil))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params CreateParams
	if err := core.BindJSON(r, &params); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	user, err := h.svc.Create(r.Context(), params)
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}

	core.Render(w, r, core.JSONStatus(http.StatusCreated, "user_created", user, nil))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}
	core.Render(w, r, core.JSON("users", list, map[string]any{"total": len(list)}))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("user", user, nil))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var params UpdateParams
	if err := core.BindJSON(r, &params); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	user, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("user", user, nil))
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := core.BindJSON(r, &req); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	err := h.svc.ChangePassword(r.Context(), chi.URLParam(r, "id"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("password_changed", nil, nil))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Dashboard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("dashboard", dash, nil))
}

func (h *Handler) errorResponse(err error) core.Response {
	var valErr core.ValidationError
	switch {
	case errors.As(err, &valErr):
		return core.JSONError(valErr)
	case errors.Is(err, ErrNotFound):
		return core.JSONError(core.ErrNotFound)
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrLoginIDTaken):
		return core.JSONError(core.ErrConflict)
	case errors.Is(err, ErrWrongPassword), errors.Is(err, ErrInvalidCredentials):
		return core.JSONError(core.ErrUnauthorized)
	case errors.Is(err, ErrPasswordTooShort):
		return core.JSONError(core.ErrUnprocessableEntity)
	default:
		return core.JSONError(err)
	}
}
