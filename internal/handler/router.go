package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	eventsHandler "github.com/turingmystery/backend/internal/handler/events"
	gameHandler "github.com/turingmystery/backend/internal/handler/game"
	npcHandler "github.com/turingmystery/backend/internal/handler/npc"
	middlewarePkg "github.com/turingmystery/backend/internal/middleware"
	npcModel "github.com/turingmystery/backend/internal/model/npc"
	gameService "github.com/turingmystery/backend/internal/service/game"
	"github.com/turingmystery/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the game engine.
func NewRouter(catalog npcModel.Catalog, gameSvc *gameService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	game := gameHandler.New(gameSvc, catalog)
	npcs := npcHandler.New(gameSvc, catalog)
	events := eventsHandler.New(gameSvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{
				"status":  "ok",
				"message": "The Turing Mystery server is running",
			})
		})

		api.Route("/game", func(gr chi.Router) {
			game.RegisterRoutes(gr)
			events.RegisterRoutes(gr)
		})

		api.Route("/npc", func(nr chi.Router) {
			npcs.RegisterRoutes(nr)
		})
	})

	return r
}
