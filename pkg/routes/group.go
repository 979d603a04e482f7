// Package routes declares route groups and registers them on a ServeMux.
package routes

import (
	"net/http"
	"strings"

	"github.com/gidroatlas/gidroatlas/pkg/middleware"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
)

// Group organizes routes under a common prefix. Group middleware wraps every
// route in the group and its children, outside any route middleware.
type Group struct {
	Prefix     string
	Tags       []string
	Middleware []middleware.Func
	Routes     []Route
	Children   []Group
	Schemas    map[string]*openapi.Schema
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		register(mux, "", nil, group)
	}
}

func register(mux *http.ServeMux, parent string, inherited []middleware.Func, group Group) {
	prefix := parent + group.Prefix
	chain := append(append([]middleware.Func{}, inherited...), group.Middleware...)

	for _, route := range group.Routes {
		fns := append(append([]middleware.Func{}, chain...), route.Middleware...)
		mux.Handle(route.Method+" "+prefix+route.Pattern, middleware.Chain(route.Handler, fns...))
	}
	for _, child := range group.Children {
		register(mux, prefix, chain, child)
	}
}

// Describe adds every documented route in groups to spec. Operations without
// tags inherit the tags of their nearest tagged group.
func Describe(spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		describe(spec, "", nil, group)
	}
}

func describe(spec *openapi.Spec, parent string, tags []string, group Group) {
	prefix := parent + group.Prefix
	if len(group.Tags) > 0 {
		tags = group.Tags
	}
	if group.Schemas != nil {
		spec.Components.AddSchemas(group.Schemas)
	}

	for _, route := range group.Routes {
		if route.Doc == nil {
			continue
		}
		if len(route.Doc.Tags) == 0 {
			route.Doc.Tags = tags
		}
		spec.AddOperation(route.Method, openAPIPath(prefix+route.Pattern), route.Doc)
	}
	for _, child := range group.Children {
		describe(spec, prefix, tags, child)
	}
}

// openAPIPath converts a ServeMux pattern to an OpenAPI path template.
func openAPIPath(pattern string) string {
	pattern = strings.TrimSuffix(pattern, "{$}")
	pattern = strings.ReplaceAll(pattern, "...}", "}")
	if pattern == "" {
		return "/"
	}
	return pattern
}
