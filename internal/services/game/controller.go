package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// gameIDLength is the number of characters in a generated game ID
const gameIDLength = 8

// Notifier is told about every accepted change to a game, after it is saved
type Notifier interface {
	GameChanged(ctx context.Context, game *model.Game, event model.Event)
}

// Controller loads games, applies moves and history jumps, and saves the result
type Controller struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	notifier Notifier
	logger   *slog.Logger

	// Serialises load-apply-save so concurrent requests cannot lose updates
	mu sync.Mutex
}

// NewController creates a new game Controller. notifier may be nil.
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	notifier Notifier,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		clock:    clock,
		random:   random,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateGame starts a new game with an empty board and O to move
func (c *Controller) CreateGame(ctx context.Context) (*model.Game, error) {
	now := c.clock.Now()
	gameID := model.GameID(c.random.String(gameIDLength, random.GameIDAlphabet))

	game := model.NewGame(gameID)
	game.CreatedAt = now
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created", slog.String("game_id", string(gameID)))

	c.notify(ctx, game, model.EventGameCreated, nil)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// GameExists reports whether a game is stored, without loading it
func (c *Controller) GameExists(ctx context.Context, gameID model.GameID) (bool, error) {
	return c.storage.GameExists(ctx, gameID)
}

// ApplyMove plays the current player's mark at index.
//
// An index off the board is an error. A move on an occupied cell or after the
// game is won is not: the game is returned unchanged and applied is false.
func (c *Controller) ApplyMove(ctx context.Context, gameID model.GameID, index int) (game *model.Game, applied bool, err error) {
	if !model.IsValidIndex(index) {
		return nil, false, model.ErrInvalidPosition
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	game, err = c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, false, err
	}

	player := game.CurrentPlayer()
	if !game.ApplyMove(index) {
		c.logger.Debug("move ignored",
			slog.String("game_id", string(gameID)),
			slog.Int("index", index),
			slog.Bool("won", game.IsWon()),
		)
		return game, false, nil
	}
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, false, err
	}

	c.logger.Info("move applied",
		slog.String("game_id", string(gameID)),
		slog.String("player", string(player)),
		slog.Int("index", index),
		slog.Int("move_count", game.MoveCount),
	)
	if game.IsWon() {
		c.logger.Info("game won",
			slog.String("game_id", string(gameID)),
			slog.String("winner", string(game.Winner)),
		)
	}

	c.notify(ctx, game, model.EventMoveApplied, model.MoveAppliedPayload{
		Index:     index,
		Player:    player,
		MoveCount: game.MoveCount,
		Winner:    game.Winner,
	})

	return game, true, nil
}

// JumpToHistory rewinds (or fast-forwards) the game to snapshot index.
// Later snapshots are kept until the next move.
func (c *Controller) JumpToHistory(ctx context.Context, gameID model.GameID, index int) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.JumpToHistory(index) {
		return nil, model.ErrInvalidHistoryIndex
	}
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("history jumped",
		slog.String("game_id", string(gameID)),
		slog.Int("index", index),
		slog.Int("history_length", len(game.History)),
	)

	c.notify(ctx, game, model.EventHistoryJumped, model.HistoryJumpedPayload{
		Index:  index,
		Winner: game.Winner,
	})

	return game, nil
}

// DeleteGame removes a game. Watchers are told so they can disconnect.
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))

	game.UpdatedAt = c.clock.Now()
	c.notify(ctx, game, model.EventGameDeleted, nil)
	return nil
}

func (c *Controller) notify(ctx context.Context, game *model.Game, eventType model.EventType, payload any) {
	if c.notifier == nil {
		return
	}
	c.notifier.GameChanged(ctx, game.Clone(), model.Event{
		Type:      eventType,
		Timestamp: game.UpdatedAt,
		GameID:    game.ID,
		Payload:   payload,
	})
}
