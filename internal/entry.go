// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/docindex/internal/storage"
	"github.com/starford/docindex/internal/summary"
)

// Run synchronizes the index once and, in watch mode, keeps it in sync
// until ctx is cancelled or the process receives SIGINT/SIGTERM.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{logOutput: os.Stderr}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := newLogger(cfg.App, app.logOutput)
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("root", cfg.Index.Root),
		slog.String("index", cfg.Index.File),
		slog.String("mode", cfg.Index.Mode),
		slog.Bool("watch", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(cfg.Index.Root)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	strategy, err := summary.StrategyFor(summary.Mode(cfg.Index.Mode))
	if err != nil {
		return err
	}

	syncer := summary.NewSynchronizer(store, summary.Options{
		IndexFile:  cfg.Index.File,
		Extension:  cfg.Index.Extension,
		Exclusions: cfg.Index.ExclusionSet(),
		Policy:     cfg.Index.Policy(),
		Preamble:   cfg.Index.Preamble(),
		Strategy:   strategy,
	}, logger)

	res, err := syncer.Run(ctx)
	if err != nil {
		return fmt.Errorf("update %s: %w", cfg.Index.File, err)
	}
	if app.onRun != nil {
		app.onRun(res)
	}

	if !cfg.Watch.Enabled {
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	watchCtx, cancel := context.WithCancel(gCtx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		return syncer.Watch(watchCtx, store.Root(), cfg.Watch.Debounce, app.onRun)
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-watchCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Watch error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watcher stopped")
	return nil
}

func newLogger(cfg ApplicationConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
