package api

import (
	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/internal/chat"
	"github.com/gidroatlas/gidroatlas/internal/hardware"
	"github.com/gidroatlas/gidroatlas/internal/objects"
	"github.com/gidroatlas/gidroatlas/internal/scheduler"
	"github.com/gidroatlas/gidroatlas/internal/users"
)

// passportConcurrency bounds parallel blob checks during bulk operations.
const passportConcurrency = 4

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Objects   objects.System
	Users     users.System
	Auth      auth.System
	Hardware  hardware.System
	Chat      chat.System
	Scheduler *scheduler.Scheduler
}

// NewDomain creates all domain systems from the API runtime. Scheduler is
// nil when disabled in config.
func NewDomain(runtime *Runtime) (*Domain, error) {
	cfg := runtime.Config
	db := runtime.DB()

	objectsSystem := objects.New(db, runtime.Storage, runtime.Logger, objects.Config{
		Pagination:     runtime.Pagination,
		MaxUploadSize:  runtime.UploadLimit,
		MaxConcurrency: passportConcurrency,
	})

	usersSystem := users.New(db, runtime.Logger, runtime.Pagination)

	domain := &Domain{
		Objects:  objectsSystem,
		Users:    usersSystem,
		Auth:     auth.New(&cfg.Auth, usersSystem, runtime.Logger),
		Hardware: hardware.New(db, runtime.Logger),
		Chat:     chat.New(&cfg.Chat, runtime.Logger),
	}

	if cfg.Scheduler.IsEnabled() {
		sched, err := scheduler.New(&cfg.Scheduler, objectsSystem, runtime.Logger)
		if err != nil {
			return nil, err
		}
		domain.Scheduler = sched
	}

	return domain, nil
}
