package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// LineStrategy completes its own line when it can, blocks the opponent's
// otherwise, then prefers the centre. Anything else is left to chance.
type LineStrategy struct {
	fallback *RandomStrategy
}

// NewLineStrategy creates a new LineStrategy
func NewLineStrategy(rnd random.Random) *LineStrategy {
	return &LineStrategy{fallback: NewRandomStrategy(rnd)}
}

// ChooseMove picks a winning cell, then a blocking cell, then the centre
func (s *LineStrategy) ChooseMove(game *model.Game) (int, bool) {
	me := game.CurrentPlayer()
	opponent := model.MarkX
	if me == model.MarkX {
		opponent = model.MarkO
	}

	if idx, ok := completingCell(game.Board, me); ok {
		return idx, true
	}
	if idx, ok := completingCell(game.Board, opponent); ok {
		return idx, true
	}

	centre := model.Index(1, 1)
	if game.Board.IsEmpty(centre) {
		return centre, true
	}
	return s.fallback.ChooseMove(game)
}

// completingCell finds the first empty cell that would give mark a line
func completingCell(b model.Board, mark model.Mark) (int, bool) {
	for _, line := range model.WinningLines {
		owned, empty := 0, -1
		for _, idx := range line {
			switch b[idx] {
			case mark:
				owned++
			case model.MarkEmpty:
				empty = idx
			}
		}
		if owned == 2 && empty >= 0 {
			return empty, true
		}
	}
	return 0, false
}
