package routes

import (
	"net/http"

	"github.com/gidroatlas/gidroatlas/pkg/middleware"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler, optionally wrapped
// by route-specific middleware. Doc, when set, is published in the OpenAPI spec.
type Route struct {
	Method     string
	Pattern    string
	Handler    http.HandlerFunc
	Middleware []middleware.Func
	Doc        *openapi.Operation
}
