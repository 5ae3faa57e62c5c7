package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour
	cfg.SessionTTL = 30 * time.Minute

	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = NewWithClient(client, cfg, s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := model.NewGame("game-1")
	game.CreatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	game.UpdatedAt = game.CreatedAt
	game.ApplyMove(0)
	game.ApplyMove(4)

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Board, retrieved.Board)
	s.Equal(game.History, retrieved.History)
	s.Equal(2, retrieved.MoveCount)
	s.Equal(model.MarkEmpty, retrieved.Winner)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestRoundTripPreservesWinnerAndJumpedState() {
	game := model.NewGame("game-1")
	for _, idx := range []int{0, 1, 4, 2, 8} {
		s.Require().True(game.ApplyMove(idx))
	}
	s.Require().True(game.JumpToHistory(3))

	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(3, retrieved.MoveCount)
	s.Len(retrieved.History, 6)
	s.Equal(retrieved.History[3], retrieved.Board)
	s.Equal(model.MarkEmpty, retrieved.Winner)

	s.Require().True(retrieved.JumpToHistory(5))
	s.Equal(model.MarkO, retrieved.Winner)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameTTL() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, model.NewGame("game-1")))

	ttl := s.mini.TTL(gameKey("game-1"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestGameExpires() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, model.NewGame("game-1")))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, model.NewGame("game-1")))

	s.Require().NoError(s.storage.DeleteGame(s.ctx, "game-1"))

	exists, err := s.storage.GameExists(s.ctx, "game-1")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestGameExists() {
	exists, err := s.storage.GameExists(s.ctx, "game-1")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveGame(s.ctx, model.NewGame("game-1")))

	exists, err = s.storage.GameExists(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(exists)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	gameID := model.GameID("game-1")
	session := &model.Session{
		TokenHash:   "hash-1",
		CurrentGame: &gameID,
		CreatedAt:   s.clock.Now(),
	}

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "hash-1")
	s.Require().NoError(err)
	s.Equal("hash-1", retrieved.TokenHash)
	s.Require().NotNil(retrieved.CurrentGame)
	s.Equal(gameID, *retrieved.CurrentGame)
}

func (s *StorageSuite) TestSessionWithoutExpiryUsesConfiguredTTL() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{TokenHash: "hash-1"}))

	s.Equal(30*time.Minute, s.mini.TTL(sessionKey("hash-1")))
}

func (s *StorageSuite) TestSessionTTLFollowsExpiry() {
	session := &model.Session{
		TokenHash: "hash-1",
		ExpiresAt: s.clock.Now().Add(10 * time.Minute),
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.Equal(10*time.Minute, s.mini.TTL(sessionKey("hash-1")))
}

func (s *StorageSuite) TestSessionTTLUsesInjectedClock() {
	// Years away from the wall clock in either direction
	s.clock.Set(time.Date(2040, 6, 1, 0, 0, 0, 0, time.UTC))
	session := &model.Session{
		TokenHash: "hash-1",
		CreatedAt: s.clock.Now(),
		ExpiresAt: s.clock.Now().Add(2 * time.Hour),
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.Equal(2*time.Hour, s.mini.TTL(sessionKey("hash-1")))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{TokenHash: "hash-1"}))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "hash-1"))

	_, err := s.storage.GetSession(s.ctx, "hash-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
