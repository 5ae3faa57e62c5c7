package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/game"
)

// GameHandler handles game endpoints.
// Live updates are published by the game controller, so handlers never broadcast.
type GameHandler struct {
	gameController *game.Controller
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.CreateGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/games/"+string(g.ID))
	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Move handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	index, err := decodeIndex(r.Body)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, applied, err := h.gameController.ApplyMove(r.Context(), gameID(r), index)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResponse{
		Applied: applied,
		Game:    response.GameFromModel(g),
	})
}

// Jump handles POST /api/v1/games/{id}/jump
func (h *GameHandler) Jump(w http.ResponseWriter, r *http.Request) {
	index, err := decodeIndex(r.Body)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.JumpToHistory(r.Context(), gameID(r), index)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func decodeIndex(body io.Reader) (int, error) {
	index, err := request.DecodeIndex(body)
	switch {
	case errors.Is(err, request.ErrMissingIndex):
		return 0, NewInvalidRequestError("index is required")
	case err != nil:
		return 0, NewInvalidRequestError("invalid request body")
	}
	return index, nil
}
