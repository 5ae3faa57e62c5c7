package middleware

import (
	"html"
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/middleware"
)

// Recovery creates panic recovery middleware for the web interface
// Returns an HTML error page on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Error - Tic-Tac-Toe</title></head>
<body>
<h1>Internal Server Error</h1>
<p>Something went wrong.</p>
<p>Reference: ` + html.EscapeString(middleware.GetRequestID(r.Context())) + `</p>
<p><a href="/">Return to home</a></p>
</body>
</html>`))
}
