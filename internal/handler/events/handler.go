package events

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	gameservice "github.com/turingmystery/backend/internal/service/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same posture as the REST CORS policy: any origin may watch.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler streams live game events (stress changes, round decisions) for one
// session over a websocket, so the client can animate state without polling.
type Handler struct {
	gameSvc *gameservice.Service
}

// New creates the events handler.
func New(gameSvc *gameservice.Service) *Handler {
	return &Handler{gameSvc: gameSvc}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/{sessionID}/events", h.handleEvents)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[events] upgrade failed for session %s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	ch := h.gameSvc.SubscribeEvents(sessionID)
	defer h.gameSvc.UnsubscribeEvents(sessionID, ch)

	// Drain the reader so close frames are processed and a dropped client
	// tears the feed down.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Printf("[events] feed opened for session %s", sessionID)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-done:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("[events] write failed for session %s: %v", sessionID, err)
				return
			}
		}
	}
}
