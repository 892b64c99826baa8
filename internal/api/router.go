package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mememaster/lobby/internal/api/handler"
	"github.com/mememaster/lobby/internal/bus"
	"github.com/mememaster/lobby/internal/dependencies/random"
	"github.com/mememaster/lobby/internal/images"
	"github.com/mememaster/lobby/internal/lobby"
	"github.com/mememaster/lobby/internal/middleware"
)

// RouterConfig holds dependencies for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Manager    *lobby.Manager
	Bus        *bus.Bus
	Random     random.Random
	Fetcher    *images.Fetcher
	BaseURL    string
	MinPlayers int
}

// NewRouter creates the relay API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	relayConn := cfg.Bus.Subscribe("relay:api")

	roomHandler := handler.NewRoomHandler(cfg.Manager, relayConn, cfg.Random, cfg.MinPlayers)
	qrHandler := handler.NewQRHandler(cfg.Manager, cfg.BaseURL)
	imageHandler := handler.NewImageHandler(cfg.Fetcher)
	eventsHandler := handler.NewEventsHandler(cfg.Bus, cfg.Manager, cfg.Logger)
	wsHandler := handler.NewWSHandler(cfg.Bus, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, nil))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}", roomHandler.Close).Methods(http.MethodDelete)
	api.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/start", roomHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/qr.png", qrHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)

	api.HandleFunc("/personalities", roomHandler.Personalities).Methods(http.MethodGet)

	api.HandleFunc("/images/random", imageHandler.Random).Methods(http.MethodGet)
	api.HandleFunc("/images", imageHandler.Upload).Methods(http.MethodPost)

	api.HandleFunc("/ws", wsHandler.Connect).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
