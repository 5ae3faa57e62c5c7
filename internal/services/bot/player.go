package bot

import (
	"github.com/mcoot/tictactoe-go/internal/model"
)

// Player plays one side of a game using a Strategy
type Player struct {
	Mark     model.Mark
	Strategy Strategy
}

// NewPlayer creates a bot playing mark
func NewPlayer(mark model.Mark, strategy Strategy) *Player {
	return &Player{Mark: mark, Strategy: strategy}
}

// ToMove reports whether it is this bot's turn in a game still in play
func (p *Player) ToMove(game *model.Game) bool {
	return !game.IsWon() && !game.Board.IsFull() && game.CurrentPlayer() == p.Mark
}

// Respond plays the bot's move if it is the bot's turn.
// It returns the cell played and whether a move was made.
func (p *Player) Respond(game *model.Game) (int, bool) {
	if !p.ToMove(game) {
		return 0, false
	}
	idx, ok := p.Strategy.ChooseMove(game)
	if !ok {
		return 0, false
	}
	return idx, game.ApplyMove(idx)
}
