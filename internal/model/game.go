package model

import (
	"strconv"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GameState is the phase of a game, derived from its winner
type GameState string

const (
	GameStateInProgress GameState = "in_progress"
	GameStateWon        GameState = "won"
)

// Game holds the board, the move counter, the winner and every board snapshot.
//
// History[0] is always the empty board, len(History) == MoveCount+1, and
// Board == History[MoveCount]. Board is a cached view of the current snapshot.
type Game struct {
	ID        GameID
	Board     Board
	MoveCount int
	Winner    Mark
	History   []Board

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGame creates a game with an empty board and a history of one snapshot
func NewGame(id GameID) *Game {
	return &Game{
		ID:      id,
		History: []Board{{}},
	}
}

// PlayerForMove returns who makes move number n: O on even moves, X on odd
func PlayerForMove(n int) Mark {
	if n%2 == 0 {
		return MarkO
	}
	return MarkX
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() Mark {
	return PlayerForMove(g.MoveCount)
}

// IsWon returns true if a player has completed a line on the current board
func (g *Game) IsWon() bool {
	return g.Winner != MarkEmpty
}

// State returns the derived game phase
func (g *Game) State() GameState {
	if g.IsWon() {
		return GameStateWon
	}
	return GameStateInProgress
}

// CanMove returns true if ApplyMove(index) would be accepted
func (g *Game) CanMove(index int) bool {
	return !g.IsWon() && g.Board.IsEmpty(index)
}

// ApplyMove places the current player's mark at index.
//
// The move is ignored, and false returned, if the game is already won or the
// cell is taken or off the board. Any snapshots after the current move are
// discarded before the new board is appended.
func (g *Game) ApplyMove(index int) bool {
	if !g.CanMove(index) {
		return false
	}

	next := g.Board.With(index, g.CurrentPlayer())

	// Full slice expression so the append never writes into a shared backing array
	g.History = append(g.History[:g.MoveCount+1:g.MoveCount+1], next)
	g.Winner = EvaluateWinner(next)
	g.Board = next
	g.MoveCount++
	return true
}

// JumpToHistory moves the game back (or forward) to snapshot index.
// History is kept intact until the next move. Out-of-range indexes are ignored.
func (g *Game) JumpToHistory(index int) bool {
	if !g.IsValidHistoryIndex(index) {
		return false
	}
	g.MoveCount = index
	g.Board = g.History[index]
	g.Winner = EvaluateWinner(g.Board)
	return true
}

// IsValidHistoryIndex returns true if index addresses a stored snapshot
func (g *Game) IsValidHistoryIndex(index int) bool {
	return index >= 0 && index < len(g.History)
}

// StatusText is the status line shown above the board
func (g *Game) StatusText() string {
	if g.IsWon() {
		return "Winner: " + string(g.Winner)
	}
	return "Next: " + string(g.CurrentPlayer())
}

// HistoryLabel is the label of the control that jumps to snapshot i
func HistoryLabel(i int) string {
	return "Goto Move #" + strconv.Itoa(i)
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	c := *g
	c.History = make([]Board, len(g.History))
	copy(c.History, g.History)
	return &c
}
