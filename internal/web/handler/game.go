package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/middleware"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	webmw "github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
	"github.com/mcoot/tictactoe-go/internal/web/templates/components"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// GameHandler handles game pages and actions
type GameHandler struct {
	gameController *game.Controller
	sessions       *session.Service
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController *game.Controller, sessions *session.Service, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		sessions:       sessions,
		hubManager:     hubManager,
		logger:         logger,
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect sends the browser to path, using HX-Redirect for htmx requests
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// Create starts a new game and makes it the session's current game
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.CreateGame(r.Context())
	if err != nil {
		webmw.SetFlash(w, "error", "Could not create game")
		redirect(w, r, "/")
		return
	}

	h.attach(r, g.ID)
	redirect(w, r, components.GamePath(g.ID))
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		h.gameError(w, r, id, err)
		return
	}

	h.attach(r, g.ID)

	data := pages.GameData{
		PageData: layout.PageData{
			Title: "Game " + string(g.ID),
			Flash: webmw.GetFlash(r.Context()),
		},
		Game: g,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Game(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render game", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Move plays the cell named by the form's index field.
// Moves on occupied cells or after a win are ignored and the board is re-shown.
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	index, err := formIndex(r)
	if err != nil {
		h.gameError(w, r, id, model.ErrInvalidPosition)
		return
	}

	g, _, err := h.gameController.ApplyMove(r.Context(), id, index)
	if err != nil {
		h.gameError(w, r, id, err)
		return
	}

	h.respond(w, r, g)
}

// Jump rewinds the game to the history snapshot named by the form's index field
func (h *GameHandler) Jump(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	index, err := formIndex(r)
	if err != nil {
		h.gameError(w, r, id, model.ErrInvalidHistoryIndex)
		return
	}

	g, err := h.gameController.JumpToHistory(r.Context(), id, index)
	if err != nil {
		h.gameError(w, r, id, err)
		return
	}

	h.respond(w, r, g)
}

// Events streams live updates for a game over SSE
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	exists, err := h.gameController.GameExists(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to look up game", slog.String("game_id", string(id)), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, middleware.GetRequestID(r.Context()))
}

// respond re-renders the game fragment for htmx, or redirects back to the page
func (h *GameHandler) respond(w http.ResponseWriter, r *http.Request, g *model.Game) {
	if !isHTMX(r) {
		http.Redirect(w, r, components.GamePath(g.ID), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Game(g).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render game fragment", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// gameError reports err with a flash message and sends the browser somewhere sensible
func (h *GameHandler) gameError(w http.ResponseWriter, r *http.Request, id model.GameID, err error) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		webmw.SetFlash(w, "error", "Game not found")
		redirect(w, r, "/")
	case errors.Is(err, model.ErrInvalidPosition):
		webmw.SetFlash(w, "error", "Invalid board position")
		redirect(w, r, components.GamePath(id))
	case errors.Is(err, model.ErrInvalidHistoryIndex):
		webmw.SetFlash(w, "error", "Invalid history entry")
		redirect(w, r, components.GamePath(id))
	default:
		h.logger.Error("game request failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()))
		webmw.SetFlash(w, "error", "Something went wrong")
		redirect(w, r, "/")
	}
}

// attach makes id the session's current game. Failures only lose resume.
func (h *GameHandler) attach(r *http.Request, id model.GameID) {
	sess := webmw.GetSession(r.Context())
	if sess == nil {
		return
	}
	if sess.CurrentGame != nil && *sess.CurrentGame == id {
		return
	}
	if err := h.sessions.Attach(r.Context(), sess.Token, id); err != nil {
		h.logger.Warn("failed to attach game to session",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()))
	}
}

func formIndex(r *http.Request) (int, error) {
	if err := r.ParseForm(); err != nil {
		return 0, err
	}
	return strconv.Atoi(r.FormValue("index"))
}
