package sse

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web/templates/components"
)

// SSE event names
const (
	// EventGameUpdate carries out-of-band HTML swaps for the game page
	EventGameUpdate = "game-update"

	// EventGameState carries the game as JSON for non-browser clients
	EventGameState = "game-state"
)

// Renderer converts game changes to SSE event data
type Renderer struct{}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// EventData represents SSE event data
type EventData struct {
	EventName string
	Data      string
}

// StateData is the JSON body of a game-state event
type StateData struct {
	Event         model.EventType `json:"event"`
	GameID        model.GameID    `json:"game_id"`
	Board         []string        `json:"board"`
	MoveCount     int             `json:"move_count"`
	Winner        string          `json:"winner,omitempty"`
	Next          string          `json:"next,omitempty"`
	Status        string          `json:"status"`
	HistoryLength int             `json:"history_length"`
}

// WrapForOOBSwap wraps HTML in a div with hx-swap-oob for out-of-band swaps
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + id + `" hx-swap-oob="true">` + html + `</div>`
}

// RenderGameEvent returns the events to broadcast after a change to game.
// Every change re-renders the whole view: board, status and history.
func (r *Renderer) RenderGameEvent(ctx context.Context, event model.Event, game *model.Game) ([]EventData, error) {
	var html bytes.Buffer
	fragments := []struct {
		id        string
		component templ.Component
	}{
		{components.BoardID, components.Board(game)},
		{components.StatusID, components.Status(game)},
		{components.HistoryID, components.History(game)},
	}
	for _, f := range fragments {
		s, err := renderToString(ctx, f.component)
		if err != nil {
			return nil, err
		}
		html.WriteString(WrapForOOBSwap(f.id, s))
		html.WriteString("\n")
	}

	state, err := json.Marshal(NewStateData(event.Type, game))
	if err != nil {
		return nil, err
	}

	return []EventData{
		{EventName: EventGameUpdate, Data: html.String()},
		{EventName: EventGameState, Data: string(state)},
	}, nil
}

// NewStateData builds the JSON view of a game
func NewStateData(eventType model.EventType, game *model.Game) StateData {
	board := make([]string, len(game.Board))
	for i, m := range game.Board {
		board[i] = string(m)
	}

	data := StateData{
		Event:         eventType,
		GameID:        game.ID,
		Board:         board,
		MoveCount:     game.MoveCount,
		Winner:        string(game.Winner),
		Status:        game.StatusText(),
		HistoryLength: len(game.History),
	}
	if !game.IsWon() {
		data.Next = string(game.CurrentPlayer())
	}
	return data
}

func renderToString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
