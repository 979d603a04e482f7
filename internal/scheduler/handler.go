package scheduler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gidroatlas/gidroatlas/pkg/handlers"
	"github.com/gidroatlas/gidroatlas/pkg/middleware"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

// Status is the scheduler state reported over HTTP.
type Status struct {
	Next    time.Time `json:"next"`
	Running bool      `json:"running"`
	LastRun *Run      `json:"last_run"`
}

// Status reports the next scheduled run and the outcome of the last one.
func (s *Scheduler) Status() Status {
	return Status{
		Next:    s.Next(),
		Running: s.running.Load(),
		LastRun: s.LastRun(),
	}
}

type Handler struct {
	sched  *Scheduler
	logger *slog.Logger
}

func NewHandler(sched *Scheduler, logger *slog.Logger) *Handler {
	return &Handler{sched: sched, logger: logger.With("handler", "scheduler")}
}

// Routes returns the scheduler route group behind guard.
func (h *Handler) Routes(guard ...middleware.Func) routes.Group {
	return routes.Group{
		Prefix:  "/scheduler",
		Tags:    []string{"Scheduler"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Status, Middleware: guard, Doc: statusDoc},
		},
	}
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sched.Status())
}

var schemas = map[string]*openapi.Schema{
	"SchedulerRun": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"started":  {Type: "string", Format: "date-time"},
			"duration": {Type: "integer", Description: "nanoseconds"},
			"updated":  {Type: "integer"},
			"error":    {Type: "string"},
		},
	},
	"SchedulerStatus": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"next":     {Type: "string", Format: "date-time"},
			"running":  {Type: "boolean"},
			"last_run": openapi.SchemaRef("SchedulerRun"),
		},
	},
}

var statusDoc = &openapi.Operation{
	Summary:  "Priority recalculation schedule and last run",
	Security: openapi.Bearer,
	Responses: map[int]*openapi.Response{
		200: openapi.JSONResponse("Scheduler state", openapi.SchemaRef("SchedulerStatus")),
		403: openapi.ResponseRef("Forbidden"),
	},
}
