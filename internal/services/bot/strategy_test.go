package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
)

// gameAfter plays the given cells from a new game
func gameAfter(s *suite.Suite, moves ...int) *model.Game {
	g := model.NewGame("bot-test")
	for _, idx := range moves {
		s.Require().True(g.ApplyMove(idx), "move at %d should be accepted", idx)
	}
	return g
}

type RandomStrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *bot.RandomStrategy
}

func TestRandomStrategySuite(t *testing.T) {
	suite.Run(t, new(RandomStrategySuite))
}

func (s *RandomStrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = bot.NewRandomStrategy(s.mockRandom)
}

func (s *RandomStrategySuite) TestChooseMove_EmptyBoard() {
	// 9 empty cells, random picks index 4
	s.mockRandom.QueueIntn(4)

	idx, ok := s.strategy.ChooseMove(gameAfter(&s.Suite))
	s.True(ok)
	s.Equal(4, idx)
}

func (s *RandomStrategySuite) TestChooseMove_PartiallyFilledBoard() {
	g := gameAfter(&s.Suite, 0, 1, 2)
	// Empty cells are 3..8; pick the second
	s.mockRandom.QueueIntn(1)

	idx, ok := s.strategy.ChooseMove(g)
	s.True(ok)
	s.Equal(4, idx)
}

func (s *RandomStrategySuite) TestChooseMove_FullBoard() {
	g := gameAfter(&s.Suite, 4, 0, 1, 7, 5, 3, 6, 2, 8)

	_, ok := s.strategy.ChooseMove(g)
	s.False(ok)
}

type LineStrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *bot.LineStrategy
}

func TestLineStrategySuite(t *testing.T) {
	suite.Run(t, new(LineStrategySuite))
}

func (s *LineStrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = bot.NewLineStrategy(s.mockRandom)
}

func (s *LineStrategySuite) TestTakesCentreFirst() {
	idx, ok := s.strategy.ChooseMove(gameAfter(&s.Suite))
	s.True(ok)
	s.Equal(4, idx)
}

func (s *LineStrategySuite) TestCompletesOwnLine() {
	// O has 0 and 1, X has 3 and 4; O to move wins at 2 rather than blocking 5
	g := gameAfter(&s.Suite, 0, 3, 1, 4)

	idx, ok := s.strategy.ChooseMove(g)
	s.True(ok)
	s.Equal(2, idx)
}

func (s *LineStrategySuite) TestBlocksOpponent() {
	// O has 0 and 1, X has 4; X to move must block at 2
	g := gameAfter(&s.Suite, 0, 4, 1)

	idx, ok := s.strategy.ChooseMove(g)
	s.True(ok)
	s.Equal(2, idx)
}

func (s *LineStrategySuite) TestFallsBackToRandom() {
	// Centre taken, no threats: X picks among the empty cells at random
	g := gameAfter(&s.Suite, 4)
	s.mockRandom.QueueIntn(0)

	idx, ok := s.strategy.ChooseMove(g)
	s.True(ok)
	s.Equal(0, idx)
}

type PlayerSuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
}

func TestPlayerSuite(t *testing.T) {
	suite.Run(t, new(PlayerSuite))
}

func (s *PlayerSuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
}

func (s *PlayerSuite) TestRespondOnlyOnItsTurn() {
	p := bot.NewPlayer(model.MarkX, bot.NewLineStrategy(s.mockRandom))
	g := gameAfter(&s.Suite)

	_, moved := p.Respond(g)
	s.False(moved, "O moves first")

	s.Require().True(g.ApplyMove(0))
	idx, moved := p.Respond(g)
	s.True(moved)
	s.Equal(4, idx)
	s.Equal(model.MarkX, g.Board[4])
	s.Equal(2, g.MoveCount)
}

func (s *PlayerSuite) TestRespondAfterWinDoesNothing() {
	p := bot.NewPlayer(model.MarkX, bot.NewRandomStrategy(s.mockRandom))
	g := gameAfter(&s.Suite, 0, 1, 4, 2, 8)

	s.False(p.ToMove(g))
	_, moved := p.Respond(g)
	s.False(moved)
	s.Equal(5, g.MoveCount)
}

func (s *PlayerSuite) TestNewStrategy() {
	for _, name := range bot.StrategyNames() {
		strategy, err := bot.NewStrategy(name, s.mockRandom)
		s.NoError(err)
		s.NotNil(strategy)
	}

	_, err := bot.NewStrategy("minimax", s.mockRandom)
	s.Error(err)
}
