package hardware

import (
	"log/slog"
	"net/http"

	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/pkg/handlers"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

// Handler provides HTTP endpoints for the controller.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{sys: sys, logger: logger.With("handler", "hardware")}
}

// Routes returns the hardware route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/hardware",
		Tags:    []string{"Hardware"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Find, Middleware: auth.Guest, Doc: docs.find},
			{Method: "PUT", Pattern: "/remote", Handler: h.SetRemoteControl, Middleware: auth.Expert, Doc: docs.remote},
			{Method: "PUT", Pattern: "/readings", Handler: h.RecordReadings, Middleware: auth.Expert, Doc: docs.readings},
		},
	}
}

// Find returns the controller state.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	hw, err := h.sys.Find(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, hw)
}

// SetRemoteControl moves the switch.
func (h *Handler) SetRemoteControl(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[RemoteCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	hw, err := h.sys.SetRemoteControl(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, hw)
}

// RecordReadings stores new sensor values.
func (h *Handler) RecordReadings(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[ReadingsCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	hw, err := h.sys.RecordReadings(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, hw)
}

var schemas = map[string]*openapi.Schema{
	"Hardware": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":             {Type: "integer"},
			"humidity":       {Type: "number"},
			"temperature":    {Type: "number"},
			"remote_control": {Type: "integer", Enum: []any{-1, 0, 1}},
			"created_at":     {Type: "string", Format: "date-time"},
			"updated_at":     {Type: "string", Format: "date-time"},
		},
	},
	"RemoteCommand": {
		Type:     "object",
		Required: []string{"remote_control"},
		Properties: map[string]*openapi.Schema{
			"remote_control": {Type: "integer", Enum: []any{-1, 0, 1}},
		},
	},
	"ReadingsCommand": {
		Type:     "object",
		Required: []string{"humidity", "temperature"},
		Properties: map[string]*openapi.Schema{
			"humidity":    {Type: "number", Minimum: openapi.Ptr(0), Maximum: openapi.Ptr(100)},
			"temperature": {Type: "number"},
		},
	},
}

var hardwareResponse = openapi.JSONResponse("Controller state", openapi.SchemaRef("Hardware"))

var docs = struct {
	find, remote, readings *openapi.Operation
}{
	find: &openapi.Operation{
		Summary:  "Controller state",
		Security: openapi.Bearer,
		Responses: map[int]*openapi.Response{
			200: hardwareResponse,
			404: openapi.ResponseRef("NotFound"),
		},
	},
	remote: &openapi.Operation{
		Summary:     "Set remote control",
		Security:    openapi.Bearer,
		RequestBody: openapi.JSONBody("RemoteCommand"),
		Responses: map[int]*openapi.Response{
			200: hardwareResponse,
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	readings: &openapi.Operation{
		Summary:     "Record sensor readings",
		Security:    openapi.Bearer,
		RequestBody: openapi.JSONBody("ReadingsCommand"),
		Responses: map[int]*openapi.Response{
			200: hardwareResponse,
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
}
