// Package scalar serves the interactive API reference for the OpenAPI
// document published by the API module.
package scalar

import (
	"html/template"
	"net/http"

	"github.com/gidroatlas/gidroatlas/pkg/module"
)

const cdn = "https://cdn.jsdelivr.net/npm/@scalar/api-reference"

var page = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
</head>
<body>
  <script id="api-reference" data-url="{{ .SpecURL }}"></script>
  <script src="{{ .Script }}"></script>
</body>
</html>
`))

// NewModule creates a module at basePath that renders the reference for the
// spec served at specURL.
func NewModule(basePath, title, specURL string) (*module.Module, error) {
	return module.New(basePath, buildRouter(title, specURL))
}

func buildRouter(title, specURL string) http.Handler {
	data := map[string]string{
		"Title":   title,
		"SpecURL": specURL,
		"Script":  cdn,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page.Execute(w, data)
	})
	return mux
}
