package components

import (
	"fmt"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Element IDs shared by the page and the live update stream
const (
	BoardID   = "board"
	StatusID  = "status"
	HistoryID = "history"
)

// MovePath is the form action for playing a cell
func MovePath(id model.GameID) string {
	return fmt.Sprintf("/game/%s/move", id)
}

// JumpPath is the form action for jumping to a history snapshot
func JumpPath(id model.GameID) string {
	return fmt.Sprintf("/game/%s/jump", id)
}

// EventsPath is the SSE stream for a game
func EventsPath(id model.GameID) string {
	return fmt.Sprintf("/game/%s/events", id)
}

// GamePath is the page for a game
func GamePath(id model.GameID) string {
	return fmt.Sprintf("/game/%s", id)
}
