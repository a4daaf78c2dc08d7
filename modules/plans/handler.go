package plans

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/pkg/file"
)

const maxFormMemory = 10 << 20

// Handler exposes chit plan endpoints. Create and update accept multipart
// form data so the plan image can ride along with the fields.
type Handler struct {
	svc *Service
}

// NewHandler creates the plans HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Router mounts the plan endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/users", h.planUsers)

	return r
}

// planView is a Plan with its image path resolved to a public URL.
type planView struct {
	Plan
	ImageURL string `json:"imageUrl,omitempty"`
}

func (h *Handler) view(plan Plan) planView {
	return planView{Plan: plan, ImageURL: h.svc.ImageURL(plan.Image)}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}

	views := make([]planView, 0, len(list))
	for _, plan := range list {
		views = append(views, h.view(plan))
	}
	core.Render(w, r, core.JSON("plans", views, map[string]any{"total": len(views)}))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("plan", h.view(*plan), nil))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	params, image, err := parsePlanForm(r)
	if err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	plan, err := h.svc.Create(r.Context(), params, image)
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSONStatus(http.StatusCreated, "plan_created", h.view(*plan), nil))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	params, image, err := parsePlanForm(r)
	if err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	plan, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), params, image)
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("plan_updated", h.view(*plan), nil))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("plan_deleted", nil, nil))
}

func (h *Handler) planUsers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.PlanUsers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.Render(w, r, h.errorResponse(err))
		return
	}
	core.Render(w, r, core.JSON("users", members, map[string]any{"total": len(members)}))
}

// parsePlanForm reads plan fields and the optional image from a multipart
// form. Absent fields stay nil so updates leave them untouched.
func parsePlanForm(r *http.Request) (Params, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return Params{}, nil, err
	}

	var params Params
	if v := r.FormValue("planName"); v != "" {
		params.Name = &v
	}

	var err error
	for key, dst := range map[string]**float64{
		"monthlySubscription": &params.MonthlySubscription,
		"minBidding":          &params.MinBidding,
		"maxBidding":          &params.MaxBidding,
		"totalAmount":         &params.TotalAmount,
	} {
		if *dst, err = formFloat(r, key); err != nil {
			return Params{}, nil, err
		}
	}
	if params.DurationMonths, err = formInt(r, "duration"); err != nil {
		return Params{}, nil, err
	}

	var image *multipart.FileHeader
	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		image = files[0]
	}
	return params, image, nil
}

func formFloat(r *http.Request, key string) (*float64, error) {
	v := r.FormValue(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func formInt(r *http.Request, key string) (*int, error) {
	v := r.FormValue(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (h *Handler) errorResponse(err error) core.Response {
	var valErr core.ValidationError
	switch {
	case errors.As(err, &valErr):
		return core.JSONError(valErr)
	case errors.Is(err, ErrNotFound):
		return core.JSONError(core.ErrNotFound)
	case errors.Is(err, ErrInvalidImage), errors.Is(err, file.ErrFileTooLarge):
		return core.JSONError(core.ErrUnprocessableEntity)
	default:
		return core.JSONError(err)
	}
}
