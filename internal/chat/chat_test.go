package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/internal/chat"
	"github.com/gidroatlas/gidroatlas/internal/users"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

type sentMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// provider fakes the chat completions endpoint and records the last request.
type provider struct {
	status   int
	reply    string
	model    string
	messages []sentMessage
}

func (p *provider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/chat/completions" {
		http.NotFound(w, r)
		return
	}

	var body struct {
		Model    string        `json:"model"`
		Messages []sentMessage `json:"messages"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	p.model, p.messages = body.Model, body.Messages

	w.Header().Set("Content-Type", "application/json")
	if p.status != 0 && p.status != http.StatusOK {
		w.WriteHeader(p.status)
		w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 0,
		"model":   body.Model,
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": p.reply},
		}},
	})
}

func newSystem(t *testing.T, p *provider, cfg chat.Config) chat.System {
	t.Helper()
	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL + "/"
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	return chat.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSend(t *testing.T) {
	p := &provider{reply: "Balkhash is a lake."}
	sys := newSystem(t, p, chat.Config{APIKey: "test", Model: "local-model"})

	reply, err := sys.Send(context.Background(), chat.Request{
		Message: "And Kapchagay?",
		History: []chat.Turn{
			{Role: chat.RoleUser, Content: "What is Balkhash?"},
			{Role: chat.RoleModel, Content: "A lake."},
		},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != "Balkhash is a lake." {
		t.Errorf("reply: got %q", reply)
	}
	if p.model != "local-model" {
		t.Errorf("model: got %s", p.model)
	}

	roles := make([]string, len(p.messages))
	for i, m := range p.messages {
		roles[i] = m.Role
	}
	if !slices.Equal(roles, []string{"system", "user", "assistant", "user"}) {
		t.Errorf("roles: got %v", roles)
	}
	if !strings.Contains(p.messages[0].Content, "GidroAtlas") {
		t.Errorf("system prompt: got %q", p.messages[0].Content)
	}
	if p.messages[3].Content != "And Kapchagay?" {
		t.Errorf("last message: got %q", p.messages[3].Content)
	}
}

func TestSendTrimsHistory(t *testing.T) {
	p := &provider{reply: "ok"}
	sys := newSystem(t, p, chat.Config{APIKey: "test", MaxHistory: 2})

	history := []chat.Turn{
		{Role: chat.RoleUser, Content: "one"},
		{Role: chat.RoleModel, Content: "two"},
		{Role: chat.RoleUser, Content: "three"},
	}
	if _, err := sys.Send(context.Background(), chat.Request{Message: "four", History: history}); err != nil {
		t.Fatal(err)
	}

	if len(p.messages) != 4 || p.messages[1].Content != "two" {
		t.Errorf("messages: got %+v", p.messages)
	}
}

func TestSendErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     chat.Config
		p       *provider
		req     chat.Request
		wantErr error
	}{
		{"empty message", chat.Config{APIKey: "test"}, &provider{}, chat.Request{Message: "  "}, chat.ErrInvalidInput},
		{"unknown role", chat.Config{APIKey: "test"}, &provider{}, chat.Request{Message: "hi", History: []chat.Turn{{Role: "system", Content: "x"}}}, chat.ErrInvalidInput},
		{"not configured", chat.Config{}, &provider{}, chat.Request{Message: "hi"}, chat.ErrNotConfigured},
		{"provider rejects", chat.Config{APIKey: "test"}, &provider{status: http.StatusBadRequest}, chat.Request{Message: "hi"}, chat.ErrUpstream},
		{"empty reply", chat.Config{APIKey: "test"}, &provider{reply: ""}, chat.Request{Message: "hi"}, chat.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem(t, tt.p, tt.cfg)
			if _, err := sys.Send(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("error: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHandlerSend(t *testing.T) {
	tests := []struct {
		name       string
		cfg        chat.Config
		p          *provider
		body       string
		wantStatus int
		wantReply  string
		wantError  bool
	}{
		{"reply", chat.Config{APIKey: "test"}, &provider{reply: "hello"}, `{"message":"hi"}`, http.StatusOK, "hello", false},
		{"provider failure", chat.Config{APIKey: "test"}, &provider{status: http.StatusBadRequest}, `{"message":"hi"}`, http.StatusBadGateway, "", true},
		{"not configured", chat.Config{}, &provider{}, `{"message":"hi"}`, http.StatusServiceUnavailable, "", true},
		{"invalid", chat.Config{APIKey: "test"}, &provider{}, `{"message":""}`, http.StatusBadRequest, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			routes.Register(mux, newSystem(t, tt.p, tt.cfg).Handler().Routes())

			req := httptest.NewRequest("POST", "/chat", strings.NewReader(tt.body))
			req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{ID: uuid.New(), Role: users.RoleGuest}))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var resp chat.Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Reply != tt.wantReply || (resp.Error != "") != tt.wantError {
				t.Errorf("response: got %+v", resp)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	cfg := chat.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	if cfg.Enabled() {
		t.Error("enabled without an API key")
	}
	if cfg.Model == "" || cfg.SystemPrompt != chat.DefaultSystemPrompt || cfg.MaxHistory != 20 {
		t.Errorf("defaults: got %+v", cfg)
	}

	t.Setenv("TEST_CHAT_KEY", "sk-test")
	withKey := chat.Config{}
	if err := withKey.Finalize(&chat.Env{APIKey: "TEST_CHAT_KEY"}); err != nil {
		t.Fatal(err)
	}
	if !withKey.Enabled() {
		t.Error("API key from env not applied")
	}

	bad := chat.Config{Timeout: "never"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("expected invalid timeout error")
	}
}
