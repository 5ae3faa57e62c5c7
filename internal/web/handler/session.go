package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/services/session"
	webmw "github.com/mcoot/tictactoe-go/internal/web/middleware"
)

// SessionHandler handles the browser session itself
type SessionHandler struct {
	sessions *session.Service
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *session.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// End forgets the browser's session and with it the current game.
// The game stays playable by anyone holding its link.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(webmw.SessionCookieName); err == nil {
		if err := h.sessions.End(r.Context(), cookie.Value); err != nil {
			h.logger.Error("failed to end session", slog.String("error", err.Error()))
			webmw.SetFlash(w, "error", "Could not end session")
			redirect(w, r, "/")
			return
		}
	}

	webmw.ClearSessionCookie(w)
	webmw.SetFlash(w, "info", "Session ended")
	redirect(w, r, "/")
}
