package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/config"
	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/web"
)

// sweepInterval is how often idle SSE hubs and expired entries are dropped
const sweepInterval = time.Minute

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		fmt.Print(config.Usage())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n\n%s", err, config.Usage())
		os.Exit(2)
	}

	// Set up logging
	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err = serve(ctx, cfg, logger)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// serve runs the server until ctx is done or the listener fails.
// The application is closed before it returns, whatever the outcome.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Create application factory
	app, err := factory.New(factory.ConfigFrom(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	// Find static files directory
	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findStaticDir()
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		SessionService: app.SessionService,
		HubManager:     app.HubManager,
		StaticDir:      staticDir,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	server := api.NewServer(mux, api.ServerConfigFrom(cfg.HTTP), logger)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go app.Sweep(sweepCtx, sweepInterval)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Close SSE streams first so Shutdown does not wait on them
		app.HubManager.CloseAll()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

// findStaticDir looks for the static files directory, returning "" if there is none
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return ""
}
