package api

import (
	"database/sql"

	"github.com/gidroatlas/gidroatlas/internal/config"
	"github.com/gidroatlas/gidroatlas/internal/infrastructure"
	"github.com/gidroatlas/gidroatlas/pkg/pagination"
)

// Runtime is the infrastructure and settings the API domain systems are built from.
type Runtime struct {
	*infrastructure.Infrastructure
	Config      *config.Config
	Pagination  pagination.Config
	UploadLimit int64
}

// NewRuntime scopes a copy of infra to the api module. The shared
// lifecycle, pool and blob client are not duplicated.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Config:         cfg,
		Pagination:     cfg.API.Pagination,
		UploadLimit:    cfg.Storage.MaxUploadBytes(),
	}
}

// DB returns the shared connection pool.
func (r *Runtime) DB() *sql.DB {
	return r.Database.Connection()
}
