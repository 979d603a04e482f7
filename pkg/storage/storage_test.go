package storage_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gidroatlas/gidroatlas/pkg/storage"
)

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults with connection string", func(t *testing.T) {
		cfg := &storage.Config{ConnectionString: "UseDevelopmentStorage=true"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatal(err)
		}
		if cfg.ContainerName != "passports" {
			t.Errorf("container = %s, want passports", cfg.ContainerName)
		}
		if cfg.MaxUploadBytes() != 20*1024*1024 {
			t.Errorf("max upload = %d", cfg.MaxUploadBytes())
		}
	})

	t.Run("service url is enough", func(t *testing.T) {
		cfg := &storage.Config{ServiceURL: "https://acct.blob.core.windows.net/"}
		if err := cfg.Finalize(nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("no endpoint", func(t *testing.T) {
		cfg := &storage.Config{}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected error without connection string or service url")
		}
	})

	t.Run("bad upload size", func(t *testing.T) {
		cfg := &storage.Config{ConnectionString: "x", MaxUploadSize: "lots"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected error for invalid max_upload_size")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_STORAGE_CONTAINER", "pdfs")
		t.Setenv("TEST_STORAGE_CONN", "UseDevelopmentStorage=true")
		cfg := &storage.Config{}
		err := cfg.Finalize(&storage.Env{
			ContainerName:    "TEST_STORAGE_CONTAINER",
			ConnectionString: "TEST_STORAGE_CONN",
		})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.ContainerName != "pdfs" {
			t.Errorf("container = %s, want pdfs", cfg.ContainerName)
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := &storage.Config{ContainerName: "passports", MaxUploadSize: "20MB"}
	base.Merge(&storage.Config{ContainerName: "staging"})

	if base.ContainerName != "staging" {
		t.Errorf("container = %s, want staging", base.ContainerName)
	}
	if base.MaxUploadSize != "20MB" {
		t.Errorf("max upload = %s, want 20MB", base.MaxUploadSize)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key  string
		want error
	}{
		{"objects/abc/passport.pdf", nil},
		{"", storage.ErrEmptyKey},
		{"../secrets", storage.ErrInvalidKey},
		{"/absolute.pdf", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := storage.ValidateKey(tt.key); !errors.Is(err, tt.want) {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	if got := storage.Key("objects", "abc", "passport.pdf"); got != "objects/abc/passport.pdf" {
		t.Errorf("Key() = %s", got)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrNotFound, http.StatusNotFound},
		{storage.ErrInvalidKey, http.StatusBadRequest},
		{errors.New("network"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := storage.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
