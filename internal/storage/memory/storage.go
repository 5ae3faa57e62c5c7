package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// Config holds expiry settings. A zero TTL keeps entries until deleted.
type Config struct {
	GameTTL    time.Duration
	SessionTTL time.Duration
}

// DefaultConfig matches the Redis defaults
func DefaultConfig() Config {
	return Config{
		GameTTL:    24 * time.Hour,
		SessionTTL: 24 * time.Hour,
	}
}

type gameEntry struct {
	game      *model.Game
	expiresAt time.Time // zero means never
}

type sessionEntry struct {
	session   model.Session
	expiresAt time.Time
}

// Storage is an in-memory implementation of the storage interface.
// Games are cloned on the way in and out so callers never share history slices.
// Expired entries read as missing and are dropped by PruneExpired.
type Storage struct {
	mu    sync.RWMutex
	cfg   Config
	clock clock.Clock

	games    map[model.GameID]*gameEntry
	sessions map[string]*sessionEntry
}

// New creates a new in-memory storage instance
func New(cfg Config, clk clock.Clock) *Storage {
	return &Storage{
		cfg:      cfg,
		clock:    clk,
		games:    make(map[model.GameID]*gameEntry),
		sessions: make(map[string]*sessionEntry),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage = (*Storage)(nil)
	_ storage.Pruner  = (*Storage)(nil)
)

func expiryAfter(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func expired(expiresAt, now time.Time) bool {
	return !expiresAt.IsZero() && !now.Before(expiresAt)
}

// Game operations

// SaveGame stores a copy of game. Every save restarts the game's TTL.
func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = &gameEntry{
		game:      game.Clone(),
		expiresAt: expiryAfter(s.clock.Now(), s.cfg.GameTTL),
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.games[id]
	if !ok || expired(entry.expiresAt, s.clock.Now()) {
		return nil, model.ErrGameNotFound
	}
	return entry.game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.games[id]
	return ok && !expired(entry.expiresAt, s.clock.Now()), nil
}

// Session operations

// SaveSession stores a copy of session. It expires at its own ExpiresAt,
// or after the configured session TTL when that is unset.
func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt := session.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = expiryAfter(s.clock.Now(), s.cfg.SessionTTL)
	}
	s.sessions[session.TokenHash] = &sessionEntry{session: *session, expiresAt: expiresAt}
	return nil
}

func (s *Storage) GetSession(ctx context.Context, tokenHash string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[tokenHash]
	if !ok || expired(entry.expiresAt, s.clock.Now()) {
		return nil, model.ErrSessionNotFound
	}
	cp := entry.session
	return &cp, nil
}

func (s *Storage) DeleteSession(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}

// PruneExpired drops every expired game and session, returning how many went
func (s *Storage) PruneExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for id, entry := range s.games {
		if expired(entry.expiresAt, now) {
			delete(s.games, id)
			removed++
		}
	}
	for hash, entry := range s.sessions {
		if expired(entry.expiresAt, now) {
			delete(s.sessions, hash)
			removed++
		}
	}
	return removed, nil
}
