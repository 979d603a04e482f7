package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gidroatlas/gidroatlas/internal/infrastructure"
	"github.com/gidroatlas/gidroatlas/pkg/lifecycle"
)

func TestProbes(t *testing.T) {
	lc := lifecycle.New()
	router := buildRouter(&infrastructure.Infrastructure{Lifecycle: lc}, "1.0.0")

	get := func(path string) (int, probe) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		var p probe
		json.NewDecoder(rec.Body).Decode(&p)
		return rec.Code, p
	}

	if code, p := get("/healthz"); code != http.StatusOK || p.Version != "1.0.0" {
		t.Errorf("healthz: got %d %+v", code, p)
	}
	if code, _ := get("/readyz"); code != http.StatusServiceUnavailable {
		t.Errorf("readyz before startup: got %d", code)
	}

	lc.WaitForStartup()
	if code, p := get("/readyz"); code != http.StatusOK || p.Status != "ready" {
		t.Errorf("readyz after startup: got %d %+v", code, p)
	}
}
