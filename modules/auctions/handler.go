package auctions

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
)

// Handler exposes the auction bid endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates the auctions HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Router mounts the auction endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/{id}/bids", h.placeBid)
	r.Get("/{id}/highest", h.highest)

	return r
}

func (h *Handler) placeBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string  `json:"userId"`
		Amount float64 `json:"amount"`
	}
	if err := core.BindJSON(r, &req); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	bid, err := h.svc.PlaceBid(r.Context(), chi.URLParam(r, "id"), req.UserID, req.Amount)
	if err != nil {
		var valErr core.ValidationError
		switch {
		case errors.As(err, &valErr):
			core.Render(w, r, core.JSONError(valErr))
		case errors.Is(err, ErrBidTooLow):
			core.Render(w, r, core.JSONError(core.ErrConflict))
		default:
			core.Render(w, r, core.JSONError(err))
		}
		return
	}

	core.Render(w, r, core.JSONStatus(http.StatusCreated, "bid_placed", bid, nil))
}

func (h *Handler) highest(w http.ResponseWriter, r *http.Request) {
	bid, ok := h.svc.HighestBid(chi.URLParam(r, "id"))
	if !ok {
		core.Render(w, r, core.JSONError(core.ErrNotFound))
		return
	}
	core.Render(w, r, core.JSON("highest_bid", bid, nil))
}
