package main

import (
	"net/http"

	"github.com/gidroatlas/gidroatlas/internal/api"
	"github.com/gidroatlas/gidroatlas/internal/config"
	"github.com/gidroatlas/gidroatlas/internal/infrastructure"
	"github.com/gidroatlas/gidroatlas/pkg/handlers"
	"github.com/gidroatlas/gidroatlas/pkg/middleware"
	"github.com/gidroatlas/gidroatlas/pkg/module"
	"github.com/gidroatlas/gidroatlas/web/scalar"
)

// Modules are the prefix-mounted handler trees.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule, err := scalar.NewModule("/scalar", cfg.API.OpenAPI.Title, cfg.API.BasePath+"/openapi.json")
	if err != nil {
		return nil, err
	}
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{API: apiModule, Scalar: scalarModule}, nil
}

func (m *Modules) Mount(router *module.Router) error {
	for _, mod := range []*module.Module{m.API, m.Scalar} {
		if err := router.Mount(mod); err != nil {
			return err
		}
	}
	return nil
}

type probe struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func buildRouter(infra *infrastructure.Infrastructure, version string) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, probe{Status: "ok", Version: version})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, probe{Status: "not ready"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, probe{Status: "ready"})
	})

	return router
}
