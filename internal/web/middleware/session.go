package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/services/session"
)

const (
	// SessionCookieName is the cookie holding the session token
	SessionCookieName = "session"

	sessionContextKey = contextKey("session")
)

// GetSession retrieves the browser session from the request context.
// Returns nil if the session middleware did not run or could not start one.
func GetSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey).(*session.Session)
	return sess
}

// Session returns middleware that resolves the session cookie, starting a
// new session when the cookie is missing, unknown or expired
func Session(sessions *session.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var sess *session.Session

			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				sess, _ = sessions.Resolve(ctx, cookie.Value)
			}

			if sess == nil {
				started, err := sessions.Start(ctx)
				if err != nil {
					// Pages still work without a session; only resume is lost
					logger.Warn("failed to start session", slog.String("error", err.Error()))
				} else {
					sess = started
					http.SetCookie(w, &http.Cookie{
						Name:     SessionCookieName,
						Value:    sess.Token,
						Path:     "/",
						MaxAge:   int(sessions.Duration().Seconds()),
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionContextKey, sess)))
		})
	}
}

// ClearSessionCookie tells the browser to drop its session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
