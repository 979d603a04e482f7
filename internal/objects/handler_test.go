package objects_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/internal/objects"
	"github.com/gidroatlas/gidroatlas/internal/users"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
	"github.com/gidroatlas/gidroatlas/pkg/storage"
)

type mockSystem struct {
	list        []objects.WaterObject
	lastList    objects.ListRequest
	created     *objects.Command
	passport    *objects.PassportCommand
	recalcCalls int
	findErr     error
}

func (m *mockSystem) Handler() *objects.Handler {
	return objects.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)), paging, 1024)
}

func (m *mockSystem) All(context.Context) ([]objects.WaterObject, error) {
	return objects.Annotate(m.list, now), nil
}

func (m *mockSystem) List(ctx context.Context, req objects.ListRequest) (*objects.ListResult, error) {
	m.lastList = req
	all, _ := m.All(ctx)
	result := req.Query(all, paging)
	return &result, nil
}

func (m *mockSystem) Find(_ context.Context, id uuid.UUID) (*objects.WaterObject, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return &objects.WaterObject{ID: id, Name: "Balkhash"}, nil
}

func (m *mockSystem) Create(_ context.Context, cmd objects.Command) (*objects.WaterObject, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	m.created = &cmd
	return &objects.WaterObject{ID: uuid.New(), Name: cmd.Name}, nil
}

func (m *mockSystem) Update(_ context.Context, id uuid.UUID, cmd objects.Command) (*objects.WaterObject, error) {
	return &objects.WaterObject{ID: id, Name: cmd.Name}, nil
}

func (m *mockSystem) Delete(context.Context, uuid.UUID) error { return m.findErr }

func (m *mockSystem) Recalculate(context.Context, time.Time) (int, error) {
	m.recalcCalls++
	return len(m.list), nil
}

func (m *mockSystem) Regions(context.Context) ([]string, error) {
	return objects.Regions(m.list), nil
}

func (m *mockSystem) Statistics(context.Context) (*objects.Statistics, error) {
	s := objects.ComputeStatistics(m.list)
	return &s, nil
}

func (m *mockSystem) Report(_ context.Context, req objects.ReportRequest) (*objects.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r := objects.RenderReport(objects.Annotate(m.list, now), req, now)
	return &r, nil
}

func (m *mockSystem) UploadPassport(_ context.Context, id uuid.UUID, cmd objects.PassportCommand) (*objects.Passport, error) {
	m.passport = &cmd
	return &objects.Passport{Object: &objects.WaterObject{ID: id}, Key: "passports/" + id.String() + "/" + cmd.Filename, Size: int64(len(cmd.Data))}, nil
}

func (m *mockSystem) DownloadPassport(context.Context, uuid.UUID) (*storage.Blob, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return &storage.Blob{
		Body:          io.NopCloser(strings.NewReader("%PDF-1.4")),
		ContentType:   "application/pdf",
		ContentLength: 8,
	}, nil
}

func newMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func as(r *http.Request, role users.Role) *http.Request {
	return r.WithContext(auth.WithPrincipal(r.Context(), auth.Principal{ID: uuid.New(), Login: string(role), Role: role}))
}

func TestHandlerAccess(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		role       users.Role
		wantStatus int
	}{
		{"anonymous list", "GET", "/objects", "", "", http.StatusUnauthorized},
		{"guest list", "GET", "/objects", "", users.RoleGuest, http.StatusOK},
		{"guest create", "POST", "/objects", `{}`, users.RoleGuest, http.StatusForbidden},
		{"guest recalculate", "POST", "/objects/recalculate", "", users.RoleGuest, http.StatusForbidden},
		{"expert recalculate", "POST", "/objects/recalculate", "", users.RoleExpert, http.StatusOK},
		{"guest delete", "DELETE", "/objects/" + uuid.NewString(), "", users.RoleGuest, http.StatusForbidden},
		{"expert delete", "DELETE", "/objects/" + uuid.NewString(), "", users.RoleExpert, http.StatusNoContent},
		{"guest regions", "GET", "/objects/regions", "", users.RoleGuest, http.StatusOK},
		{"guest statistics", "GET", "/objects/statistics", "", users.RoleGuest, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newMux(&mockSystem{list: registry()})

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.role != "" {
				req = as(req, tt.role)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandlerListExpertFilters(t *testing.T) {
	tests := []struct {
		role          users.Role
		wantCondition string
		wantTotal     int
	}{
		{users.RoleGuest, "", 4},
		{users.RoleExpert, "2", 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			sys := &mockSystem{list: registry()}
			mux := newMux(sys)

			req := as(httptest.NewRequest("GET", "/objects?technical_condition=2&sort_by=name&order=asc&page_size=10", nil), tt.role)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d", rec.Code)
			}
			if sys.lastList.Filters.TechnicalCondition != tt.wantCondition {
				t.Errorf("condition filter: got %q, want %q", sys.lastList.Filters.TechnicalCondition, tt.wantCondition)
			}
			if sys.lastList.SortField != "name" || sys.lastList.Direction != objects.Asc {
				t.Errorf("ordering: got %s %s", sys.lastList.SortField, sys.lastList.Direction)
			}

			var body struct {
				Total       int                   `json:"total"`
				Data        []objects.WaterObject `json:"data"`
				Highlighted *objects.WaterObject  `json:"highlighted"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Total != tt.wantTotal {
				t.Errorf("total: got %d, want %d", body.Total, tt.wantTotal)
			}
		})
	}
}

func TestHandlerCreate(t *testing.T) {
	sys := &mockSystem{}
	mux := newMux(sys)

	body, _ := json.Marshal(validCommand())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, as(httptest.NewRequest("POST", "/objects", bytes.NewReader(body)), users.RoleExpert))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if sys.created == nil || sys.created.Name != "Balkhash" {
		t.Errorf("created: got %+v", sys.created)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, as(httptest.NewRequest("POST", "/objects", strings.NewReader(`{"name":"x","technical_condition":9}`)), users.RoleExpert))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid command: got %d, want 400", rec.Code)
	}
}

func TestHandlerFind(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newMux(&mockSystem{}).ServeHTTP(rec, as(httptest.NewRequest("GET", "/objects/not-a-uuid", nil), users.RoleGuest))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newMux(&mockSystem{findErr: objects.ErrNotFound}).ServeHTTP(rec, as(httptest.NewRequest("GET", "/objects/"+uuid.NewString(), nil), users.RoleGuest))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})
}

func TestHandlerReport(t *testing.T) {
	tests := []struct {
		query      string
		wantStatus int
	}{
		{"", http.StatusOK},
		{"?type=critical", http.StatusOK},
		{"?type=region&region=Almaty", http.StatusOK},
		{"?type=region", http.StatusBadRequest},
		{"?type=weekly", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newMux(&mockSystem{list: registry()}).ServeHTTP(rec, as(httptest.NewRequest("GET", "/objects/report"+tt.query, nil), users.RoleGuest))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment") {
				t.Errorf("content-disposition: got %s", rec.Header().Get("Content-Disposition"))
			}
		})
	}
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestHandlerUploadPassport(t *testing.T) {
	id := uuid.NewString()

	t.Run("accepted", func(t *testing.T) {
		sys := &mockSystem{}
		body, ct := multipartBody(t, "file", "passport.pdf", []byte("%PDF-1.4 small"))

		req := httptest.NewRequest("POST", "/objects/"+id+"/passport", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		newMux(sys).ServeHTTP(rec, as(req, users.RoleExpert))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d, want 201 (%s)", rec.Code, rec.Body.String())
		}
		if sys.passport == nil || sys.passport.Filename != "passport.pdf" {
			t.Errorf("passport: got %+v", sys.passport)
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		body, ct := multipartBody(t, "document", "passport.pdf", []byte("%PDF-1.4"))

		req := httptest.NewRequest("POST", "/objects/"+id+"/passport", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		newMux(&mockSystem{}).ServeHTTP(rec, as(req, users.RoleExpert))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})

	t.Run("too large", func(t *testing.T) {
		body, ct := multipartBody(t, "file", "passport.pdf", bytes.Repeat([]byte("x"), 4096))

		req := httptest.NewRequest("POST", "/objects/"+id+"/passport", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		newMux(&mockSystem{}).ServeHTTP(rec, as(req, users.RoleExpert))

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status: got %d, want 413", rec.Code)
		}
	})
}

func TestHandlerDownloadPassport(t *testing.T) {
	id := uuid.NewString()

	rec := httptest.NewRecorder()
	newMux(&mockSystem{}).ServeHTTP(rec, as(httptest.NewRequest("GET", "/objects/"+id+"/passport", nil), users.RoleGuest))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content-type: got %s", ct)
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Errorf("body: got %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	newMux(&mockSystem{findErr: objects.ErrNoPassport}).ServeHTTP(rec, as(httptest.NewRequest("GET", "/objects/"+id+"/passport", nil), users.RoleGuest))
	if rec.Code != http.StatusNotFound {
		t.Errorf("no passport: got %d, want 404", rec.Code)
	}
}
