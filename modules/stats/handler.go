package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
)

// Handler exposes the admin stats endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates the stats HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Router mounts the stats endpoint.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.overview)
	return r
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		core.Render(w, r, core.JSONError(err))
		return
	}
	core.Render(w, r, core.JSON("stats", overview, nil))
}
