package main

import (
	"context"

	"github.com/gidroatlas/gidroatlas/internal/config"
	"github.com/gidroatlas/gidroatlas/internal/infrastructure"
)

// Server wires infrastructure, modules, and the HTTP listener.
type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg.Version)
	if err := modules.Mount(router); err != nil {
		return nil, err
	}

	return &Server{
		cfg:     cfg,
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Run starts every subsystem and blocks until ctx is cancelled, then shuts
// down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	logger := s.infra.Logger
	logger.Info(
		"gidroatlas starting",
		"version", s.cfg.Version,
		"addr", s.cfg.Server.Addr(),
		"env", s.cfg.Env(),
	)

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		logger.Info("all subsystems ready")
	}()

	<-ctx.Done()

	logger.Info("initiating shutdown")
	if err := s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration()); err != nil {
		return err
	}
	logger.Info("gidroatlas stopped")
	return nil
}
