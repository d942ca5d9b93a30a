// Package server exposes the analyzer over HTTP: the dashboard page, its
// static assets, and the JSON API the dashboard scripts call.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nitin85058/VEYA/internal/config"
	"github.com/nitin85058/VEYA/internal/health"
	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/store"
	"github.com/nitin85058/VEYA/internal/types"
)

// Runner executes the analysis pipeline for one uploaded image.
type Runner interface {
	Run(ctx context.Context, filename string, data []byte) (*types.Analysis, error)
}

// Server is the analyzer web server.
type Server struct {
	cfg    *config.Config
	runner Runner
	store  *store.Store
	rules  *health.ActiveRules
	router *gin.Engine
}

// NewServer creates the web server and registers all routes. The dashboard
// page and static assets are served only when cfg.Server.WebRoot is set;
// the JSON API is always registered.
func NewServer(cfg *config.Config, runner Runner, st *store.Store, rules *health.ActiveRules) *Server {
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	s := &Server{
		cfg:    cfg,
		runner: runner,
		store:  st,
		rules:  rules,
		router: router,
	}

	if root := cfg.Server.WebRoot; root != "" {
		router.LoadHTMLGlob(filepath.Join(root, "templates", "*"))
		router.Static("/static", filepath.Join(root, "static"))
		router.GET("/", s.handleDashboard)
	}

	api := router.Group("/api")
	{
		api.POST("/analyses", s.handleUpload)
		api.GET("/analyses", s.handleList)
		api.GET("/analyses/:id", s.handleGet)
		api.DELETE("/analyses/:id", s.handleDelete)
		api.DELETE("/analyses", s.handleClear)
		api.GET("/analyses/:id/report.json", s.handleJSONReport)
		api.GET("/analyses/:id/report.txt", s.handleTextReport)
		api.GET("/fleet", s.handleFleet)
		api.GET("/rules", s.handleRules)
	}

	router.GET("/healthz", s.handleHealthz)

	return s
}

// Router returns the underlying gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server and blocks until SIGINT/SIGTERM or a listen
// failure, then drains in-flight requests before returning.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Server("listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logging.Server("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logging.Server("shutdown complete")
	return nil
}
