// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/gidroatlas/gidroatlas/internal/config"
	"github.com/gidroatlas/gidroatlas/internal/infrastructure"
	"github.com/gidroatlas/gidroatlas/pkg/middleware"
	"github.com/gidroatlas/gidroatlas/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The recalculation scheduler is registered with the lifecycle when enabled.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	if domain.Scheduler != nil {
		if err := domain.Scheduler.Start(runtime.Lifecycle); err != nil {
			return nil, fmt.Errorf("scheduler start failed: %w", err)
		}
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime.Logger); err != nil {
		return nil, err
	}

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(domain.Auth.Identify())

	return m, nil
}
