package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nitin85058/VEYA/internal/health"
	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/server"
	"github.com/nitin85058/VEYA/internal/store"
)

// serveCmd runs the web dashboard
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard and JSON API",
	Long: `Starts the VEYA web server: the dashboard page, its static assets, and
the JSON API under /api. Analyses live in memory for the lifetime of the
process; stopping the server discards the session.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	runner, active, model, err := buildRunner()
	if err != nil {
		return err
	}
	defer closeClient(model)

	if cfg.Health.WatchRules && cfg.Health.RulesPath != "" {
		watcher, err := health.NewWatcher(cfg.Health.RulesPath, active)
		if err != nil {
			return fmt.Errorf("failed to create rules watcher: %w", err)
		}
		if err := watcher.Start(context.Background()); err != nil {
			return fmt.Errorf("failed to start rules watcher: %w", err)
		}
		defer watcher.Stop()
	}

	srv := server.NewServer(cfg, runner, store.New(), active)

	logging.Boot("veya %s serving on %s", cfg.Version, cfg.Addr())
	logger.Info("Starting server",
		zap.String("addr", cfg.Addr()),
		zap.String("backend", cfg.Gemini.Backend))

	return srv.Run()
}
