package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixelpost/pixelpost/app/api"
	"github.com/pixelpost/pixelpost/app/auth"
	"github.com/pixelpost/pixelpost/app/bookmarks"
	"github.com/pixelpost/pixelpost/app/cfg"
	"github.com/pixelpost/pixelpost/app/database"
	"github.com/pixelpost/pixelpost/app/feed"
	"github.com/pixelpost/pixelpost/app/headlines"
	"github.com/pixelpost/pixelpost/app/profile"
	"github.com/pixelpost/pixelpost/app/tasks"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was requested and printed.
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if c.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting PixelPost server", "version", c.Version)

	db, err := database.NewConnection(c.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", c.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", c.DBPath, "migration_version", version, "dirty", dirty)

	topics, err := headlines.LoadTopics(c.TopicsFile)
	if err != nil {
		slog.Error("Failed to load topics", "path", c.TopicsFile, "error", err)
		os.Exit(1)
	}

	userRepo := database.NewUserStore(db)
	blogRepo := database.NewBlogStore(db)
	localState := database.NewLocalStateStore(db)

	authService := auth.NewService(userRepo, c.JWTSecret, time.Duration(c.TokenTTLMins)*time.Minute)
	bookmarkStore := bookmarks.NewStore(localState)
	profileStore := profile.NewStore(localState)

	httpClient := &http.Client{Timeout: 60 * time.Second}

	// Feed fetches carry no transport timeout.
	fetcher := headlines.NewClient(c.HeadlinesEndpoint, c.HeadlinesAPIKey, c.HeadlinesLang, c.UserAgent, &http.Client{})
	sessionManager := feed.NewManager(fetcher,
		time.Duration(c.SearchDebounceMs)*time.Millisecond, c.ScrollThreshold)

	slog.Info("Starting background scheduler", "workers", c.WorkerCount, "interval_seconds", c.SchedulerInterval)
	scheduler := tasks.NewScheduler(bookmarkStore, sessionManager, httpClient, headlines.NewContentExtractor())
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(authService, userRepo, blogRepo, bookmarkStore,
		profileStore, sessionManager, topics, scheduler, httpClient, c.UserAgent)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
