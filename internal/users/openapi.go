package users

import "github.com/gidroatlas/gidroatlas/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"User": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":         {Type: "string", Format: "uuid"},
			"login":      {Type: "string"},
			"role":       {Type: "string", Enum: []any{"guest", "expert"}},
			"created_at": {Type: "string", Format: "date-time"},
		},
	},
	"CreateUser": {
		Type:     "object",
		Required: []string{"login", "password"},
		Properties: map[string]*openapi.Schema{
			"login":    {Type: "string"},
			"password": {Type: "string", Format: "password"},
			"role":     {Type: "string", Enum: []any{"guest", "expert"}},
		},
	},
	"UpdateUser": {
		Type:     "object",
		Required: []string{"login"},
		Properties: map[string]*openapi.Schema{
			"login":    {Type: "string"},
			"password": {Type: "string", Format: "password"},
		},
	},
	"UserRole": {
		Type:       "object",
		Required:   []string{"role"},
		Properties: map[string]*openapi.Schema{"role": {Type: "string", Enum: []any{"guest", "expert"}}},
	},
}

var idParam = openapi.PathParam("id", "User ID")

var userResponse = openapi.JSONResponse("User", openapi.SchemaRef("User"))

var docs = struct {
	list, find, create, update, role, remove *openapi.Operation
}{
	list: &openapi.Operation{
		Summary:  "List users",
		Security: openapi.Bearer,
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number"),
			openapi.QueryParam("page_size", "integer", "Results per page"),
			openapi.QueryParam("search", "string", "Login substring"),
			openapi.QueryParam("sort", "string", "Sort fields, - prefix for descending"),
			openapi.QueryParam("role", "string", "Role filter"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Page of users", &openapi.Schema{Type: "object"}),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	find: &openapi.Operation{
		Summary:    "Find user",
		Security:   openapi.Bearer,
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: userResponse,
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Create user",
		Security:    openapi.Bearer,
		RequestBody: openapi.JSONBody("CreateUser"),
		Responses: map[int]*openapi.Response{
			201: userResponse,
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	update: &openapi.Operation{
		Summary:     "Update user",
		Security:    openapi.Bearer,
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.JSONBody("UpdateUser"),
		Responses: map[int]*openapi.Response{
			200: userResponse,
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	role: &openapi.Operation{
		Summary:     "Change user role",
		Security:    openapi.Bearer,
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.JSONBody("UserRole"),
		Responses: map[int]*openapi.Response{
			200: userResponse,
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	remove: &openapi.Operation{
		Summary:    "Delete user",
		Security:   openapi.Bearer,
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
