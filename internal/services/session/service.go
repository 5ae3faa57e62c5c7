package session

import (
	"context"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// Errors
var (
	ErrInvalidSession = errors.New("invalid or expired session")
)

// tokenLength is the number of characters in a session token
const tokenLength = 32

// Session is a resolved browser session. Token is only known when the session
// is first started; afterwards the caller already holds it.
type Session struct {
	Token       string
	CurrentGame *model.GameID
	ExpiresAt   time.Time
}

// Service ties browser sessions to their current game
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	sessionDuration time.Duration
}

// Config holds configuration for the session service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new session Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
	}
}

// Duration returns how long a session lives after it is last touched
func (s *Service) Duration() time.Duration {
	return s.sessionDuration
}

// Start creates a new session with no current game
func (s *Service) Start(ctx context.Context) (*Session, error) {
	token := s.random.String(tokenLength, random.TokenAlphabet)
	if token == "" {
		return nil, errors.New("failed to generate session token")
	}
	now := s.clock.Now()

	stored := &model.Session{
		TokenHash: HashToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}
	if err := s.storage.SaveSession(ctx, stored); err != nil {
		s.logger.Error("failed to save session", slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Debug("session started")

	return &Session{
		Token:     token,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Resolve looks up the session for a token
func (s *Service) Resolve(ctx context.Context, token string) (*Session, error) {
	stored, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:       token,
		CurrentGame: stored.CurrentGame,
		ExpiresAt:   stored.ExpiresAt,
	}, nil
}

// Attach records gameID as the session's current game and extends the session
func (s *Service) Attach(ctx context.Context, token string, gameID model.GameID) error {
	stored, err := s.load(ctx, token)
	if err != nil {
		return err
	}

	stored.CurrentGame = &gameID
	stored.ExpiresAt = s.clock.Now().Add(s.sessionDuration)

	return s.storage.SaveSession(ctx, stored)
}

// End removes a session. Ending an unknown session is not an error.
func (s *Service) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.storage.DeleteSession(ctx, HashToken(token))
}

func (s *Service) load(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	hash := HashToken(token)
	stored, err := s.storage.GetSession(ctx, hash)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if stored.IsExpired(s.clock.Now()) {
		_ = s.storage.DeleteSession(ctx, hash)
		return nil, ErrInvalidSession
	}

	return stored, nil
}

// HashToken returns the hex blake2b-256 digest stored in place of a token
func HashToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
