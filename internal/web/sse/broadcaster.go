package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Broadcaster pushes re-rendered game views to every client watching a game.
// It is the game controller's change notifier.
type Broadcaster struct {
	hubManager *HubManager
	renderer   *Renderer
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		renderer:   NewRenderer(),
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// GameChanged renders the game and broadcasts it to the game's hub, if any
func (b *Broadcaster) GameChanged(ctx context.Context, game *model.Game, event model.Event) {
	hub := b.hubManager.GetHub(game.ID)
	if hub == nil {
		return
	}

	// Closing the hub ends every stream; reconnects then get a 404
	if event.Type == model.EventGameDeleted {
		b.hubManager.RemoveHub(game.ID)
		return
	}

	events, err := b.renderer.RenderGameEvent(ctx, event, game)
	if err != nil {
		b.logger.Error("sse failed to render game",
			slog.String("game_id", string(game.ID)),
			slog.Any("error", err))
		return
	}

	for _, e := range events {
		hub.BroadcastEvent(e.EventName, e.Data)
	}

	b.logger.Debug("sse game update broadcast",
		slog.String("game_id", string(game.ID)),
		slog.String("event", string(event.Type)),
		slog.Int("clients", hub.ClientCount()))
}
