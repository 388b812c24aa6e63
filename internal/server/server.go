package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wiseman/studentrecords/internal/bootstrap"
	"github.com/wiseman/studentrecords/internal/config"
	"github.com/wiseman/studentrecords/internal/seed"
)

// Server holds the state for the HTTP server.
type Server struct {
	config     *config.Config
	router     *gin.Engine
	closeStore func()
	logger     zerolog.Logger
	http       *http.Server
}

// NewServer creates and initializes a new server instance by calling
// the bootstrap functions in dependency order.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	store, closeStore, err := bootstrap.SetupStore(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup document store: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, store, lgr)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(context.Background(), deps.Repos, lgr); err != nil {
			// Seeding is best-effort; startup proceeds without it
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	s := &Server{
		config:     cfg,
		router:     router,
		closeStore: closeStore,
		logger:     lgr,
	}

	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.closeStore != nil {
		s.logger.Info().Msg("Closing document store...")
		s.closeStore()
		s.logger.Info().Msg("Document store closed.")
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
