package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/web/handler"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	SessionService *session.Service
	HubManager     *sse.HubManager
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	sessionMiddleware := middleware.Session(cfg.SessionService, cfg.Logger)

	// Apply global middleware to all routes
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)

	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.GameController, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.SessionService, hubManager, cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.SessionService, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Live updates carry no flash and need no session
	r.HandleFunc("/game/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Ending a session must not start a new one
	r.HandleFunc("/session/end", sessionHandler.End).Methods(http.MethodPost)

	// Pages and actions
	pages := r.NewRoute().Subrouter()
	pages.Use(flashMiddleware)
	pages.Use(sessionMiddleware)
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/game", gameHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/game/{id}", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/game/{id}/move", gameHandler.Move).Methods(http.MethodPost)
	pages.HandleFunc("/game/{id}/jump", gameHandler.Jump).Methods(http.MethodPost)

	return r
}
