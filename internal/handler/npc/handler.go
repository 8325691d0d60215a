package npc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	npcmodel "github.com/turingmystery/backend/internal/model/npc"
	gameservice "github.com/turingmystery/backend/internal/service/game"
	"github.com/turingmystery/backend/pkg/utils"
)

// Handler exposes the character surface: listing, chat, history.
type Handler struct {
	gameSvc *gameservice.Service
	catalog npcmodel.Catalog
}

// New creates the NPC handler.
func New(gameSvc *gameservice.Service, catalog npcmodel.Catalog) *Handler {
	return &Handler{
		gameSvc: gameSvc,
		catalog: catalog,
	}
}

// RegisterRoutes mounts the NPC routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{npcID}", h.handleGet)
	r.Post("/{npcID}/chat", h.handleChat)
	r.Get("/{npcID}/history", h.handleHistory)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	characters := h.catalog.List()
	listings := make([]npcmodel.Listing, 0, len(characters))
	for _, character := range characters {
		listings = append(listings, character.Listing())
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"npcs":    listings,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	npcID := chi.URLParam(r, "npcID")

	character, ok := h.catalog.FindByID(npcID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "NPC not found")
		return
	}

	// Public projection only: no prompts, triggers or thresholds.
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"npc":     character.Listing(),
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	npcID := chi.URLParam(r, "npcID")

	var payload struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" || payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "missing sessionId or message")
		return
	}

	result, err := h.gameSvc.Chat(r.Context(), payload.SessionID, npcID, payload.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"response":     result.Reply,
		"npcName":      result.NPCName,
		"stressLevel":  result.StressLevel,
		"stressState":  result.StressState,
		"stressChange": formatStressChange(result.StressChange),
		"messageCount": result.Turns,
		"degraded":     result.Degraded,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	npcID := chi.URLParam(r, "npcID")
	sessionID := r.URL.Query().Get("sessionId")

	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "missing sessionId")
		return
	}

	history, stressLevel, err := h.gameSvc.History(r.Context(), sessionID, npcID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"history":     history,
		"stressLevel": stressLevel,
	})
}

func formatStressChange(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gameservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, gameservice.ErrUnknownNPC):
		utils.RespondError(w, http.StatusBadRequest, "invalid NPC ID")
	case errors.Is(err, gameservice.ErrMessageRequired):
		utils.RespondError(w, http.StatusBadRequest, "message is required")
	default:
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
