package redis

import (
	"fmt"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "ttt"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// sessionKey returns the Redis key for a Session
func sessionKey(tokenHash string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, tokenHash)
}
