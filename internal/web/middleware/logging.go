package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/middleware"
)

// Logging creates request ID and logging middleware for the web interface
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	requestID := middleware.RequestID()
	logging := middleware.Logging(logger.With(slog.String("component", "web")))
	return func(next http.Handler) http.Handler {
		return requestID(logging(next))
	}
}
