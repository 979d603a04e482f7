package users_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/internal/users"
	"github.com/gidroatlas/gidroatlas/pkg/pagination"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

var paging = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

type mockSystem struct {
	accounts    []users.User
	lastFilters users.Filters
	lastPage    pagination.PageRequest
}

func (m *mockSystem) Handler() *users.Handler {
	return users.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)), paging)
}

func (m *mockSystem) List(_ context.Context, page pagination.PageRequest, filters users.Filters) (*pagination.PageResult[users.User], error) {
	m.lastPage = page
	m.lastFilters = filters
	result := pagination.NewPageResult(m.accounts, len(m.accounts), page.Page, page.PageSize)
	return &result, nil
}

func (m *mockSystem) Find(_ context.Context, id uuid.UUID) (*users.User, error) {
	for _, u := range m.accounts {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (m *mockSystem) Create(_ context.Context, cmd users.CreateCommand) (*users.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	for _, u := range m.accounts {
		if u.Login == cmd.Login {
			return nil, users.ErrDuplicate
		}
	}
	u := users.User{ID: uuid.New(), Login: cmd.Login, Role: cmd.Role, CreatedAt: time.Now()}
	m.accounts = append(m.accounts, u)
	return &u, nil
}

func (m *mockSystem) Update(ctx context.Context, id uuid.UUID, cmd users.UpdateCommand) (*users.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	u, err := m.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Login = cmd.Login
	return u, nil
}

func (m *mockSystem) UpdateRole(ctx context.Context, id uuid.UUID, role users.Role) (*users.User, error) {
	if !role.Valid() {
		return nil, users.ErrInvalidInput
	}
	u, err := m.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := m.Find(ctx, id)
	return err
}

func (m *mockSystem) Verify(context.Context, string, string) (*users.User, error) {
	return nil, users.ErrNotFound
}

func newMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{accounts: []users.User{{ID: uuid.New(), Login: "lead", Role: users.RoleExpert}}}
	mux := newMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/users?role=expert&page_size=5&sort=-login", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if sys.lastFilters.Role == nil || *sys.lastFilters.Role != users.RoleExpert {
		t.Errorf("role filter: got %v", sys.lastFilters.Role)
	}
	if sys.lastPage.PageSize != 5 || len(sys.lastPage.Sort) != 1 || !sys.lastPage.Sort[0].Descending {
		t.Errorf("page request: got %+v", sys.lastPage)
	}

	var body pagination.PageResult[users.User]
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || body.Data[0].Login != "lead" {
		t.Errorf("body: got %+v", body)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/users?role=admin", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown role: got %d, want 400", rec.Code)
	}
}

func TestHandlerCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"login":"inspector","password":"secret1"}`, http.StatusCreated},
		{"duplicate", `{"login":"lead","password":"secret1"}`, http.StatusConflict},
		{"short password", `{"login":"x","password":"1"}`, http.StatusBadRequest},
		{"unknown field", `{"login":"x","password":"secret1","admin":true}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{accounts: []users.User{{ID: uuid.New(), Login: "lead"}}}

			rec := httptest.NewRecorder()
			newMux(sys).ServeHTTP(rec, httptest.NewRequest("POST", "/users", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandlerUpdateRole(t *testing.T) {
	id := uuid.New()
	sys := &mockSystem{accounts: []users.User{{ID: id, Login: "lead", Role: users.RoleGuest}}}
	mux := newMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("PUT", "/users/"+id.String()+"/role", strings.NewReader(`{"role":"expert"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var u users.User
	json.NewDecoder(rec.Body).Decode(&u)
	if u.Role != users.RoleExpert {
		t.Errorf("role: got %s, want expert", u.Role)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("PUT", "/users/"+uuid.NewString()+"/role", strings.NewReader(`{"role":"expert"}`)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user: got %d, want 404", rec.Code)
	}
}

func TestHandlerGuard(t *testing.T) {
	sys := &mockSystem{}
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	}

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes(deny))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/users/"+uuid.NewString(), nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}
