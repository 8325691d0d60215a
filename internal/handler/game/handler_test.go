package game

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/turingmystery/backend/internal/model/npc"
	gameservice "github.com/turingmystery/backend/internal/service/game"
	"github.com/turingmystery/backend/internal/storage/memory"
)

func setupRouter(t *testing.T) (*chi.Mux, *gameservice.Service) {
	t.Helper()
	catalog := npc.NewMemoryCatalog(npc.Seed())
	gameSvc, err := gameservice.NewService(catalog, nil, memory.New(), nil)
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}

	handler := New(gameSvc, catalog)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, gameSvc
}

func startGame(t *testing.T, r *chi.Mux) string {
	t.Helper()
	payload := []byte(`{"playerName":"Ada"}`)
	req := httptest.NewRequest(http.MethodPost, "/start", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		SessionID string `json:"sessionId"`
		NPCs      []struct {
			ID string `json:"id"`
		} `json:"npcs"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if body.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if len(body.NPCs) != 5 {
		t.Fatalf("expected 5 NPC listings, got %d", len(body.NPCs))
	}
	return body.SessionID
}

func TestStartGame(t *testing.T) {
	r, _ := setupRouter(t)
	startGame(t, r)
}

func TestGetStateUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestGuessFlow(t *testing.T) {
	r, _ := setupRouter(t)
	sessionID := startGame(t, r)

	payload := []byte(`{"npcId":"librarian"}`)
	req := httptest.NewRequest(http.MethodPost, "/"+sessionID+"/guess", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Success    bool   `json:"success"`
		GameStatus string `json:"gameStatus"`
		Message    string `json:"message"`
		Revelation string `json:"revelation"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success")
	}
	if body.GameStatus != "won" && body.GameStatus != "lost" {
		t.Fatalf("unexpected gameStatus: %s", body.GameStatus)
	}
	if body.Message == "" || body.Revelation == "" {
		t.Fatal("verdict must carry message and revelation")
	}

	// The round is decided; a second guess conflicts.
	req = httptest.NewRequest(http.MethodPost, "/"+sessionID+"/guess", bytes.NewReader([]byte(`{"npcId":"mayor"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestGuessInvalidNPC(t *testing.T) {
	r, _ := setupRouter(t)
	sessionID := startGame(t, r)

	payload := []byte(`{"npcId":"ghost"}`)
	req := httptest.NewRequest(http.MethodPost, "/"+sessionID+"/guess", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCluesEmptyOnFreshSession(t *testing.T) {
	r, _ := setupRouter(t)
	sessionID := startGame(t, r)

	req := httptest.NewRequest(http.MethodGet, "/"+sessionID+"/clues", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Clues []string `json:"clues"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if body.Clues == nil {
		t.Fatal("clues should be an empty list, not null")
	}
	if len(body.Clues) != 0 {
		t.Fatalf("expected no clues, got %v", body.Clues)
	}
}
