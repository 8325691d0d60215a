package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/turingmystery/backend/internal/config"
	"github.com/turingmystery/backend/internal/handler"
	"github.com/turingmystery/backend/internal/model/npc"
	"github.com/turingmystery/backend/internal/service/ai"
	gameservice "github.com/turingmystery/backend/internal/service/game"
	"github.com/turingmystery/backend/internal/storage"
	"github.com/turingmystery/backend/internal/storage/memory"
	"github.com/turingmystery/backend/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	catalog := npc.NewMemoryCatalog(npc.Seed())

	// Durable tier is optional: without DATABASE_PATH the registry runs on
	// the volatile tier plus stateless recovery alone.
	var durable storage.Store
	if cfg.Storage.DatabasePath != "" {
		store, err := sqlite.New(cfg.Storage.DatabasePath)
		if err != nil {
			log.Printf("warning: failed to open database at %s: %v", cfg.Storage.DatabasePath, err)
			log.Println("continuing without durable session storage")
		} else {
			defer store.Close()
			if err := store.Ping(ctx); err != nil {
				log.Printf("warning: database unreachable: %v", err)
			} else {
				durable = store
				log.Printf("durable session storage at %s", cfg.Storage.DatabasePath)
			}
		}
	} else {
		log.Println("no DATABASE_PATH configured, sessions are in-memory only")
	}

	var responder gameservice.Responder
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing with placeholder NPC replies")
		} else {
			responder = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, NPC replies use placeholders")
	}

	gameSvc, err := gameservice.NewService(catalog, durable, memory.New(), responder)
	if err != nil {
		log.Fatalf("failed to initialize game service: %v", err)
	}

	router := handler.NewRouter(catalog, gameSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("The Turing Mystery backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
