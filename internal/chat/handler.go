package chat

import (
	"log/slog"
	"net/http"

	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/pkg/handlers"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

// Handler provides the chat endpoint.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{sys: sys, logger: logger.With("handler", "chat")}
}

// Routes returns the chat route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/chat",
		Tags:    []string{"Chat"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Send, Middleware: auth.Guest, Doc: docs.send},
		},
	}
}

// Send relays a message. Failures still answer with a Response body whose
// error field describes the problem.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[Request](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	reply, err := h.sys.Send(r.Context(), req)
	if err != nil {
		status := MapHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("chat failed", "status", status, "error", err)
		}
		handlers.RespondJSON(w, status, Response{Error: err.Error()})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Reply: reply})
}

var schemas = map[string]*openapi.Schema{
	"ChatRequest": {
		Type:     "object",
		Required: []string{"message"},
		Properties: map[string]*openapi.Schema{
			"message": {Type: "string"},
			"history": {
				Type: "array",
				Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"role":    {Type: "string", Enum: []any{"user", "model"}},
						"content": {Type: "string"},
					},
				},
			},
		},
	},
	"ChatResponse": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"reply": {Type: "string"},
			"error": {Type: "string"},
		},
	},
}

var docs = struct {
	send *openapi.Operation
}{
	send: &openapi.Operation{
		Summary:     "Ask the assistant",
		Security:    openapi.Bearer,
		RequestBody: openapi.JSONBody("ChatRequest"),
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Reply", openapi.SchemaRef("ChatResponse")),
			400: openapi.JSONResponse("Invalid request", openapi.SchemaRef("ChatResponse")),
			502: openapi.JSONResponse("Provider failure", openapi.SchemaRef("ChatResponse")),
			503: openapi.JSONResponse("Chat not configured", openapi.SchemaRef("ChatResponse")),
		},
	},
}
