package auth

import (
	"log/slog"
	"net/http"

	"github.com/gidroatlas/gidroatlas/pkg/handlers"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

// Handler provides the login and identity endpoints.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{sys: sys, logger: logger.With("handler", "auth")}
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Routes returns the route group for authentication endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/auth",
		Tags:    []string{"Auth"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/login", Handler: h.Login, Doc: docs.login},
			{Method: "GET", Pattern: "/me", Handler: h.Me, Middleware: Guest, Doc: docs.me},
		},
	}
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[LoginRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.Login == "" || req.Password == "" {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	session, err := h.sys.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// Me returns the authenticated caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	handlers.RespondJSON(w, http.StatusOK, p)
}

var schemas = map[string]*openapi.Schema{
	"LoginRequest": {
		Type:     "object",
		Required: []string{"login", "password"},
		Properties: map[string]*openapi.Schema{
			"login":    {Type: "string", Example: "expert"},
			"password": {Type: "string", Format: "password"},
		},
	},
	"Principal": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":    {Type: "string", Format: "uuid"},
			"login": {Type: "string"},
			"role":  {Type: "string", Enum: []any{"guest", "expert"}},
			"demo":  {Type: "boolean"},
		},
	},
	"Session": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"token":      {Type: "string"},
			"expires_at": {Type: "string", Format: "date-time"},
			"user":       openapi.SchemaRef("User"),
			"demo":       {Type: "boolean"},
		},
	},
}

var docs = struct {
	login, me *openapi.Operation
}{
	login: &openapi.Operation{
		Summary:     "Log in",
		Description: "Checks stored accounts, then the demo accounts, and returns a bearer token.",
		RequestBody: openapi.JSONBody("LoginRequest"),
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Session", openapi.SchemaRef("Session")),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	me: &openapi.Operation{
		Summary:  "Current caller",
		Security: openapi.Bearer,
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Principal", openapi.SchemaRef("Principal")),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}
