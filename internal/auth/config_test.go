package auth_test

import (
	"testing"
	"time"

	"github.com/gidroatlas/gidroatlas/internal/auth"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := auth.Config{Secret: secret}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Issuer != "gidroatlas" {
			t.Errorf("issuer: got %s", cfg.Issuer)
		}
		if cfg.TokenTTLDuration() != 24*time.Hour {
			t.Errorf("ttl: got %s", cfg.TokenTTLDuration())
		}
		if !cfg.DemoUsersEnabled() {
			t.Error("demo users disabled by default")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_AUTH_SECRET", secret+"-env")
		t.Setenv("TEST_AUTH_TTL", "1h")
		t.Setenv("TEST_AUTH_DEMO", "false")

		cfg := auth.Config{}
		err := cfg.Finalize(&auth.Env{
			Secret:    "TEST_AUTH_SECRET",
			TokenTTL:  "TEST_AUTH_TTL",
			DemoUsers: "TEST_AUTH_DEMO",
		})
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Secret != secret+"-env" || cfg.TokenTTLDuration() != time.Hour || cfg.DemoUsersEnabled() {
			t.Errorf("env not applied: %+v", cfg)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []auth.Config{
			{Secret: "short"},
			{Secret: secret, TokenTTL: "soon"},
			{Secret: secret, TokenTTL: "-1h"},
		}
		for _, cfg := range tests {
			if err := cfg.Finalize(nil); err == nil {
				t.Errorf("%+v: expected error", cfg)
			}
		}
	})
}

func TestConfigMerge(t *testing.T) {
	off := false
	base := auth.Config{Secret: secret, Issuer: "base", TokenTTL: "2h"}
	base.Merge(&auth.Config{Issuer: "overlay", DemoUsers: &off})

	if base.Issuer != "overlay" || base.TokenTTL != "2h" || base.Secret != secret {
		t.Errorf("merge: got %+v", base)
	}
	if base.DemoUsers == nil || *base.DemoUsers {
		t.Error("demo flag not merged")
	}
}
