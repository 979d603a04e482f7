package assessment

import (
	"log/slog"
	"net/http"

	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/pkg/handlers"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

// Handler serves water quality assessments.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger.With("handler", "assessment")}
}

// Routes returns the assessment route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/assessment",
		Tags:    []string{"Assessment"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Assess, Middleware: auth.Guest, Doc: docs.assess},
		},
	}
}

// Assess scores the reading in the request body. An empty body uses every default.
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var reading Reading
	if r.ContentLength != 0 {
		var err error
		reading, err = handlers.DecodeJSON[Reading](r)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	result := Assess(reading)
	h.logger.Debug("assessment computed", "score", result.Score, "label", result.Label)
	handlers.RespondJSON(w, http.StatusOK, result)
}

var schemas = map[string]*openapi.Schema{
	"Reading": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"ph":               {Type: "number", Description: "Default 7"},
			"turbidity":        {Type: "number", Description: "NTU, default 2"},
			"dissolved_oxygen": {Type: "number", Description: "mg/L, default 8"},
			"temperature":      {Type: "number", Description: "Celsius, default 20"},
			"conductivity":     {Type: "number", Description: "µS/cm, default 200"},
		},
	},
	"Assessment": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"score":         {Type: "number", Minimum: openapi.Ptr(0), Maximum: openapi.Ptr(1)},
			"label":         {Type: "string", Enum: []any{"Excellent", "Good", "Moderate", "Poor", "Critical"}},
			"probabilities": {Type: "object"},
			"important_features": {
				Type: "array",
				Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"name":   {Type: "string"},
						"value":  {Type: "number"},
						"weight": {Type: "number"},
					},
				},
			},
			"explanation":   {Type: "string"},
			"is_simulation": {Type: "boolean"},
		},
	},
}

var docs = struct {
	assess *openapi.Operation
}{
	assess: &openapi.Operation{
		Summary:     "Assess water quality",
		Description: "Scores a reading with a fixed heuristic formula. Missing fields take their defaults.",
		Security:    openapi.Bearer,
		RequestBody: openapi.JSONBody("Reading"),
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Assessment", openapi.SchemaRef("Assessment")),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}
