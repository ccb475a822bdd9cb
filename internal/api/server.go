package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/internal/services"
)

type Server struct {
	httpServer *http.Server
	handler    *Handler
	cfg        *config.Config
}

func New(service *services.Service) *Server {
	cfg := service.Config()
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(tracingMiddleware)
	r.Use(metricsMiddleware)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      r,
	}

	server := &Server{
		httpServer: srv,
		handler:    NewHandler(service),
		cfg:        cfg,
	}
	server.SetupRoutes(r)
	return server
}

func (a *Server) Handler() http.Handler {
	return a.httpServer.Handler
}

// Start blocks serving requests until Shutdown is called.
func (a *Server) Start() error {
	log.Info().Msgf("Starting api server on %s", a.httpServer.Addr)
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

func (a *Server) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}
