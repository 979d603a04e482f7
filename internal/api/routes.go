package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gidroatlas/gidroatlas/internal/assessment"
	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/internal/config"
	"github.com/gidroatlas/gidroatlas/internal/scheduler"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

// Groups returns every route group served by the API. User management and
// the scheduler status are restricted to experts.
func Groups(domain *Domain, logger *slog.Logger) []routes.Group {
	groups := []routes.Group{
		domain.Auth.Handler().Routes(),
		domain.Objects.Handler().Routes(),
		domain.Users.Handler().Routes(auth.Expert...),
		domain.Hardware.Handler().Routes(),
		domain.Chat.Handler().Routes(),
		assessment.NewHandler(logger).Routes(),
	}
	if domain.Scheduler != nil {
		groups = append(groups, scheduler.NewHandler(domain.Scheduler, logger).Routes(auth.Expert...))
	}
	return groups
}

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config, logger *slog.Logger) error {
	all := Groups(domain, logger)
	routes.Register(mux, all...)

	spec := openapi.NewSpec(&cfg.API.OpenAPI)
	spec.AddServer(cfg.API.BasePath)
	routes.Describe(spec, all...)

	serve, err := spec.Handler()
	if err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", serve)
	return nil
}
