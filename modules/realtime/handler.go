package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aasthachits/chitfund/core"
	"github.com/aasthachits/chitfund/modules/auctions"
	"github.com/aasthachits/chitfund/pkg/broadcast"
	"github.com/aasthachits/chitfund/pkg/logger"
)

const connBuffer = 16

// Handler bridges broadcast rooms onto Server-Sent Events. A client opens
// one stream per room set; the subscription lives exactly as long as the
// request and the hub prunes the connection when the client goes away.
type Handler struct {
	hub *broadcast.Hub[any]
	log *slog.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) { h.log = log }
}

// NewHandler creates the realtime HTTP handler over the given hub.
func NewHandler(hub *broadcast.Hub[any], opts ...Option) *Handler {
	h := &Handler{
		hub: hub,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router mounts the SSE endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/events", h.stream)                      // ?rooms=<id>,<id>  (default: global)
	r.Get("/plans/{planId}/events", h.planStream)   // one plan's room
	r.Get("/auctions/{id}/events", h.auctionStream) // one auction's room
	r.Get("/auctions/events", h.allAuctionsStream)  // global room

	return r
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	rooms := splitRooms(r.URL.Query().Get("rooms"))
	if len(rooms) == 0 {
		rooms = []string{broadcast.GlobalRoom}
	}
	h.serve(w, r, rooms)
}

func (h *Handler) planStream(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, []string{chi.URLParam(r, "planId")})
}

func (h *Handler) auctionStream(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, []string{auctions.Room(chi.URLParam(r, "id"))})
}

func (h *Handler) allAuctionsStream(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, []string{broadcast.GlobalRoom})
}

// serve subscribes to every requested room and writes events until the
// client disconnects.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, rooms []string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		core.Render(w, r, core.JSONError(core.ErrInternalServerError))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()

	// One shared channel would need fan-in; instead each room gets its own
	// subscription and a forwarding goroutine.
	merged := make(chan broadcast.Event[any], connBuffer)
	for _, room := range rooms {
		conn := h.hub.Subscribe(ctx, room, connBuffer)
		go func() {
			for ev := range conn.Events() {
				select {
				case merged <- ev:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-merged:
			if err := writeEvent(w, ev); err != nil {
				h.log.DebugContext(ctx, "sse write failed", logger.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev broadcast.Event[any]) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\ndata: %s\n\n", ev.ID, data)
	return err
}

func splitRooms(raw string) []string {
	var rooms []string
	for _, room := range strings.Split(raw, ",") {
		if room = strings.TrimSpace(room); room != "" {
			rooms = append(rooms, room)
		}
	}
	return rooms
}
