package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// RandomStrategy picks random empty cells
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove picks a random empty cell on the board
func (s *RandomStrategy) ChooseMove(game *model.Game) (int, bool) {
	empty := emptyCells(game.Board)
	if len(empty) == 0 {
		return 0, false
	}
	return empty[s.random.Intn(len(empty))], true
}
