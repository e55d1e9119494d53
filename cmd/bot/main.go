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

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/bot"
	"github.com/safetymonkey/discord-to-github-issues-bot/internal/config"
	"github.com/safetymonkey/discord-to-github-issues-bot/internal/handler"
	"github.com/safetymonkey/discord-to-github-issues-bot/internal/repository"
	"github.com/safetymonkey/discord-to-github-issues-bot/internal/tracker"
)

func main() {
	// Structured JSON logs to stdout for container environments.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()

	db, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	links := repository.NewLinkRepository(db)
	if err := links.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize link store: %w", err)
	}
	slog.Info("database ready", "path", cfg.DatabasePath)

	gh, err := tracker.NewClient(ctx, tracker.Config{
		Token: cfg.GitHubToken,
		Owner: cfg.RepoOwner,
		Name:  cfg.RepoName,
	})
	if err != nil {
		return fmt.Errorf("create github client: %w", err)
	}
	if err := gh.CheckRepository(ctx); err != nil {
		return fmt.Errorf("github repository %s: %w", cfg.Repository(), err)
	}
	slog.Info("connected to github repository", "repository", cfg.Repository())

	b, err := bot.New(cfg.DiscordToken, gh, links)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	if err := b.Start(); err != nil {
		return fmt.Errorf("start bot: %w", err)
	}
	slog.Info("bot is ready and operational")

	health := handler.NewHealthServer(links)
	errCh := make(chan error, 1)
	go func() {
		slog.Info("health server starting", "addr", cfg.HealthAddr)
		errCh <- health.Start(cfg.HealthAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			b.Stop()
			return fmt.Errorf("health server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := health.Shutdown(shutdownCtx); err != nil {
		slog.Warn("health server shutdown", "error", err)
	}
	if err := b.Stop(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}

	slog.Info("bot shutdown complete")
	return nil
}
