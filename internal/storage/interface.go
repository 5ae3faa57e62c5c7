package storage

import (
	"context"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// Session operations, keyed by token digest
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, tokenHash string) (*model.Session, error)
	DeleteSession(ctx context.Context, tokenHash string) error
}

// Pruner is implemented by backends that have to drop expired entries
// themselves. Redis expires keys on its own.
type Pruner interface {
	PruneExpired(ctx context.Context) (int, error)
}
