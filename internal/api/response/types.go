package response

import (
	"time"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Game represents a game in API responses.
// Board and History cells are "O", "X" or "" for an empty cell.
type Game struct {
	ID        string    `json:"id"`
	Board     []string  `json:"board"`
	MoveCount int       `json:"move_count"`
	Winner    *string   `json:"winner"`
	Next      *string   `json:"next"`
	Status    string    `json:"status"`
	State     string    `json:"state"`
	History   []History `json:"history"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// History is one stored snapshot with the label shown for it
type History struct {
	Index   int      `json:"index"`
	Label   string   `json:"label"`
	Board   []string `json:"board"`
	Current bool     `json:"current"`
}

// BoardFromModel converts a model.Board to a flat list of cells
func BoardFromModel(b model.Board) []string {
	cells := make([]string, len(b))
	for i, m := range b {
		cells[i] = string(m)
	}
	return cells
}

// GameFromModel converts model.Game to response Game
func GameFromModel(g *model.Game) Game {
	history := make([]History, len(g.History))
	for i, b := range g.History {
		history[i] = History{
			Index:   i,
			Label:   model.HistoryLabel(i),
			Board:   BoardFromModel(b),
			Current: i == g.MoveCount,
		}
	}

	var winner, next *string
	if g.IsWon() {
		w := string(g.Winner)
		winner = &w
	} else {
		n := string(g.CurrentPlayer())
		next = &n
	}

	return Game{
		ID:        string(g.ID),
		Board:     BoardFromModel(g.Board),
		MoveCount: g.MoveCount,
		Winner:    winner,
		Next:      next,
		Status:    g.StatusText(),
		State:     string(g.State()),
		History:   history,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// MoveResponse is the response after playing a cell.
// Applied is false when the move was ignored (occupied cell or game won).
type MoveResponse struct {
	Applied bool `json:"applied"`
	Game    Game `json:"game"`
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status string `json:"status"`
}
