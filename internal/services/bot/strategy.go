package bot

import (
	"fmt"
	"sort"

	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// Strategy defines how a bot chooses its next cell
type Strategy interface {
	// ChooseMove returns an empty cell index for the player to move,
	// or false if the board has no empty cell
	ChooseMove(game *model.Game) (int, bool)
}

// Strategy names accepted by NewStrategy
const (
	StrategyRandom = "random"
	StrategyLine   = "line"
)

// NewStrategy builds the named strategy
func NewStrategy(name string, rnd random.Random) (Strategy, error) {
	switch name {
	case StrategyRandom:
		return NewRandomStrategy(rnd), nil
	case StrategyLine:
		return NewLineStrategy(rnd), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy %q (want one of %v)", name, StrategyNames())
	}
}

// StrategyNames lists the strategies NewStrategy accepts
func StrategyNames() []string {
	names := []string{StrategyRandom, StrategyLine}
	sort.Strings(names)
	return names
}

// emptyCells returns the indexes of the empty cells in board order
func emptyCells(b model.Board) []int {
	empty := make([]int, 0, b.EmptyCount())
	for i := range b {
		if b.IsEmpty(i) {
			empty = append(empty, i)
		}
	}
	return empty
}
