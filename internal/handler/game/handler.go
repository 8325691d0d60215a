package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turingmystery/backend/internal/model/npc"
	gameservice "github.com/turingmystery/backend/internal/service/game"
	"github.com/turingmystery/backend/pkg/utils"
)

// Handler exposes the round lifecycle: start, state, guess, clues.
type Handler struct {
	gameSvc *gameservice.Service
	catalog npc.Catalog
}

// New creates the game handler.
func New(gameSvc *gameservice.Service, catalog npc.Catalog) *Handler {
	return &Handler{
		gameSvc: gameSvc,
		catalog: catalog,
	}
}

// RegisterRoutes mounts the game routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/start", h.handleStart)
	r.Get("/{sessionID}", h.handleState)
	r.Post("/{sessionID}/guess", h.handleGuess)
	r.Get("/{sessionID}/clues", h.handleClues)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PlayerName string `json:"playerName"`
	}

	// An empty body is fine: the player name defaults server-side.
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	session, err := h.gameSvc.StartGame(r.Context(), payload.PlayerName)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to start game")
		return
	}

	listings := make([]npc.Listing, 0, len(h.catalog.List()))
	for _, character := range h.catalog.List() {
		listings = append(listings, character.Listing())
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"sessionId": session.ID,
		"message":   "Welcome, " + session.PlayerName + ". A strange incident has occurred in Digital City. One of the residents may not be who they claim to be...",
		"npcs":      listings,
	})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := h.gameSvc.GameState(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"session": state,
	})
}

func (h *Handler) handleGuess(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		NPCID string `json:"npcId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.gameSvc.Accuse(r.Context(), sessionID, payload.NPCID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"correct":    outcome.Correct,
		"gameStatus": outcome.Status,
		"message":    outcome.Message,
		"revelation": outcome.Revelation,
	})
}

func (h *Handler) handleClues(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	clues, err := h.gameSvc.Clues(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"clues":   clues,
	})
}

// respondServiceError maps the engine's error taxonomy onto HTTP statuses.
// Conflict is distinct from bad input so the client can say "round already
// decided" instead of "bad request".
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gameservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, gameservice.ErrUnknownNPC):
		utils.RespondError(w, http.StatusBadRequest, "invalid NPC ID")
	case errors.Is(err, gameservice.ErrRoundDecided):
		utils.RespondError(w, http.StatusConflict, "round already decided")
	case errors.Is(err, gameservice.ErrMessageRequired):
		utils.RespondError(w, http.StatusBadRequest, "message is required")
	default:
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
