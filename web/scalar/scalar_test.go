package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gidroatlas/gidroatlas/web/scalar"
)

func TestModule(t *testing.T) {
	m, err := scalar.NewModule("/scalar", "GidroAtlas API", "/api/openapi.json")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/scalar", http.StatusOK},
		{"/scalar/", http.StatusOK},
		{"/scalar/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			m.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && !strings.Contains(rec.Body.String(), `data-url="/api/openapi.json"`) {
				t.Errorf("spec url missing from page: %s", rec.Body.String())
			}
		})
	}
}

func TestModuleInvalidPrefix(t *testing.T) {
	if _, err := scalar.NewModule("/docs/api", "x", "/api/openapi.json"); err == nil {
		t.Error("expected error for nested prefix")
	}
}
