package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	gameController *game.Controller
	logger         *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(gameController *game.Controller, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Home renders the home page, offering to resume the session's game if it still exists
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	var current *model.Game
	if sess := middleware.GetSession(r.Context()); sess != nil && sess.CurrentGame != nil {
		g, err := h.gameController.GetGame(r.Context(), *sess.CurrentGame)
		if err == nil {
			current = g
		}
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Home",
			Flash: middleware.GetFlash(r.Context()),
		},
		CurrentGame: current,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render home", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
