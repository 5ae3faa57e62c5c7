package model

import "time"

// Session ties a browser to the game it is currently playing.
// Only a digest of the session token is stored.
type Session struct {
	TokenHash   string
	CurrentGame *GameID // nil until a game is started
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// IsExpired returns true if the session is no longer valid at now
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
